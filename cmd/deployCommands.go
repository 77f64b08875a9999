package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"zvitbot/internal/bootstrap"
	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/discord"
	"zvitbot/internal/errs"
)

var deployCommandsCmd = &cobra.Command{
	Use:   "deploy-commands",
	Short: "Register slash commands with the guild",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, bot *discord.Bot) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start deploy-commands", slog.String("guild_id", app.Config.Discord.GuildID))

		count, err := bot.DeployCommands(ctx)
		if err != nil {
			logging.Error(ctx, "deploy commands failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "deploy commands")
		}

		logging.Info(ctx, "deploy-commands finished", slog.Int("commands", count))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "registered %d commands for guild %s\n", count, app.Config.Discord.GuildID); err != nil {
			return errs.Wrap(err, "write deploy-commands output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(deployCommandsCmd)
}
