package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zvitbot/internal/bootstrap"
	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/discord"
	"zvitbot/internal/errs"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the gateway and serve interactions",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, bot *discord.Bot) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Migration runs on every start so a fresh database gets the
		// schema and an older one gains issued_by before any insert.
		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		logging.Info(ctx, "starting gateway session")
		if err := bot.Run(ctx); err != nil {
			return errs.Wrap(err, "run bot")
		}

		logging.Info(ctx, "gateway session closed")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(runCmd)
}
