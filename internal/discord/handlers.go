package discord

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/domain/diploma"
	"zvitbot/internal/errs"
	"zvitbot/internal/ports"
	"zvitbot/internal/usecase/diplomas"
	"zvitbot/internal/usecase/reports"
)

func (b *Bot) buildRouter() *Router {
	r := NewRouter(b.api)

	r.Command("op_report", b.handleReportForm)
	r.Command("отримати_диплом", b.handleDiplomaCommand)
	r.Command("op_history", b.handleHistory)
	r.Command("op_list", b.handleList)
	r.Command("setup_buttons", b.handleSetupButtons)

	for _, id := range diploma.ButtonIDs() {
		r.Button(id, b.handleDiplomaButton)
	}
	r.Button(createReportButtonID, b.handleReportForm)
	r.Button(searchNameButtonID, func(ctx context.Context, ev *Event) error {
		return ev.Responder.ShowModal(searchNameModal())
	})
	r.Button(searchStaticButtonID, func(ctx context.Context, ev *Event) error {
		return ev.Responder.ShowModal(searchStaticModal())
	})
	r.Button(searchIDButtonID, func(ctx context.Context, ev *Event) error {
		return ev.Responder.ShowModal(searchIDModal())
	})
	r.Button(showRecentButtonID, b.handleShowRecent)

	r.Modal(reportModalID, b.handleReportSubmit)
	r.Modal(searchNameModalID, b.searchModalHandler(b.reports.SearchByName, reports.ComposeSearch))
	r.Modal(searchStaticModalID, b.searchModalHandler(b.reports.SearchByStatic, reports.ComposeSearch))
	r.Modal(searchIDModalID, b.searchModalHandler(b.reports.SearchByID, reports.ComposeIDResult))
	r.DiplomaModal(b.handleDiplomaSubmit)

	return r
}

// handleReportForm opens the report creation form. When channel restriction
// is configured, the slash command is rejected outside the reports channel;
// the panel button is exempt because the panel lives where it was set up.
func (b *Bot) handleReportForm(_ context.Context, ev *Event) error {
	if ev.Interaction.Type == discordgo.InteractionApplicationCommand &&
		b.cfg.RestrictReportChannel &&
		b.cfg.ReportsChannelID != "" &&
		ev.Interaction.ChannelID != b.cfg.ReportsChannelID {
		return ev.Responder.ReplyEphemeral("Ця команда доступна тільки в каналі Терапія.")
	}

	return ev.Responder.ShowModal(reportModal())
}

func (b *Bot) handleDiplomaCommand(_ context.Context, ev *Event) error {
	return ev.Responder.ShowModal(diplomaModal(diploma.Therapist))
}

func (b *Bot) handleDiplomaButton(_ context.Context, ev *Event) error {
	kind, ok := diploma.ParseButtonID(ev.Interaction.MessageComponentData().CustomID)
	if !ok {
		kind = diploma.Therapist
	}
	return ev.Responder.ShowModal(diplomaModal(kind))
}

// handleHistory serves the three read-only query shapes directly, without
// deferral.
func (b *Bot) handleHistory(ctx context.Context, ev *Event) error {
	options := commandOptions(ev.Interaction)

	by := options.str("by")
	query := options.str("query")

	var content string
	switch by {
	case "name":
		rows, err := b.reports.SearchByName(ctx, query)
		if err != nil {
			return err
		}
		content = reports.ComposeSearch(rows)
	case "static":
		rows, err := b.reports.SearchByStatic(ctx, query)
		if err != nil {
			return err
		}
		content = reports.ComposeSearch(rows)
	case "id":
		rows, err := b.reports.SearchByID(ctx, query)
		if err != nil {
			return err
		}
		content = reports.ComposeIDResult(rows)
	default:
		content = reports.ComposeSearch(nil)
	}

	return ev.Responder.ReplyEphemeral(content)
}

func (b *Bot) handleList(ctx context.Context, ev *Event) error {
	limit := int(commandOptions(ev.Interaction).integer("limit"))

	rows, err := b.reports.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	return ev.Responder.ReplyEphemeral(reports.ComposeList(rows))
}

// handleShowRecent is the panel variant of op_list; it defers first to match
// the historical flow.
func (b *Bot) handleShowRecent(ctx context.Context, ev *Event) error {
	if err := ev.Responder.Defer(); err != nil {
		return err
	}

	rows, err := b.reports.ListRecent(ctx, 0)
	if err != nil {
		return err
	}
	return ev.Responder.Edit(reports.ComposeList(rows))
}

// handleSetupButtons posts the persistent button panel. The only authorized
// action in the bot: administrators only.
func (b *Bot) handleSetupButtons(_ context.Context, ev *Event) error {
	if !invokerIsAdmin(ev.Interaction) {
		return ev.Responder.ReplyEphemeral("❌ Ця команда доступна тільки для адміністраторів.")
	}
	return ev.Responder.ReplyComplex(buttonPanel())
}

// handleReportSubmit is the side-effecting half of report creation:
// defer, persist, render, deliver, finalize.
func (b *Bot) handleReportSubmit(ctx context.Context, ev *Event) error {
	if err := ev.Responder.Defer(); err != nil {
		return err
	}

	result, err := b.reports.Create(ctx, reports.CreateInput{
		FullName:    ev.Values["full_name"],
		Static:      ev.Values["static"],
		Operation:   ev.Values["operation"],
		Description: ev.Values["description"],
		IssuedBy:    ev.Values["issued_by"],
	})
	if err != nil {
		return err
	}

	report := result.Report
	if err := b.channels.sendComplex(b.cfg.ReportsChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("🧾 Звіт №%d — %s (Static: %s)", report.ID, report.FullName, report.Static),
		Files: []*discordgo.File{{
			Name:        fmt.Sprintf("report_%d.jpg", report.ID),
			ContentType: "image/jpeg",
			Reader:      bytes.NewReader(result.Image.Data),
		}},
	}); err != nil {
		// The row is already committed; only delivery failed.
		return errs.Wrap(err, "deliver report")
	}

	logging.Info(ctx, "report created and delivered", slog.Uint64("report_id", report.ID))
	return ev.Responder.Edit(fmt.Sprintf("✅ Звіт згенеровано (№%d) і відправлено.", report.ID))
}

func (b *Bot) handleDiplomaSubmit(ctx context.Context, ev *Event) error {
	if err := ev.Responder.Defer(); err != nil {
		return err
	}

	result, err := b.diplomas.Issue(ctx, diplomas.IssueInput{
		Kind:     ev.Kind,
		Surname:  ev.Values["surname"],
		Name:     ev.Values["name"],
		Static:   ev.Values["gender"],
		IssuedBy: ev.Values["issued_by"],
	})
	if err != nil {
		return err
	}

	if err := b.channels.sendComplex(b.cfg.TargetChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("🎓 **Диплом №%d** — для **%s**", result.Serial, result.FullName),
		Files: []*discordgo.File{{
			Name:        fmt.Sprintf("diploma_%s.png", invokerID(ev.Interaction)),
			ContentType: "image/png",
			Reader:      bytes.NewReader(result.Image.Data),
		}},
	}); err != nil {
		return errs.Wrap(err, "deliver diploma")
	}

	logging.Info(ctx, "diploma issued", slog.Int("serial", result.Serial), slog.String("kind", ev.Kind.String()))
	return ev.Responder.Edit("✅ Диплом згенеровано та відправлено у канал!")
}

// searchModalHandler builds the deferred flow shared by the three search
// forms: same shape, different query and composer.
func (b *Bot) searchModalHandler(
	search func(context.Context, string) ([]ports.Report, error),
	compose func([]ports.Report) string,
) Handler {
	return func(ctx context.Context, ev *Event) error {
		if err := ev.Responder.Defer(); err != nil {
			return err
		}

		rows, err := search(ctx, ev.Values["query"])
		if err != nil {
			return err
		}
		return ev.Responder.Edit(compose(rows))
	}
}

type optionSet map[string]*discordgo.ApplicationCommandInteractionDataOption

func commandOptions(i *discordgo.InteractionCreate) optionSet {
	data := i.ApplicationCommandData()
	options := make(optionSet, len(data.Options))
	for _, opt := range data.Options {
		options[opt.Name] = opt
	}
	return options
}

func (o optionSet) str(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o optionSet) integer(name string) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func invokerIsAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return "unknown"
}
