package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/bootstrap/config"
	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/errs"
	"zvitbot/internal/usecase/diplomas"
	"zvitbot/internal/usecase/reports"
)

// interactionAPI is the narrow slice of the session used to answer
// interactions; narrowed for test fakes.
type interactionAPI interface {
	respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	editResponse(i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

// channelAPI is the narrow slice of the session used for channel traffic:
// delivery of rendered documents and the maintenance sweep.
type channelAPI interface {
	sendComplex(channelID string, msg *discordgo.MessageSend) error
	messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
	bulkDelete(channelID string, messageIDs []string) error
	deleteMessage(channelID string, messageID string) error
}

type sessionAPI struct {
	s *discordgo.Session
}

func (a sessionAPI) respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return a.s.InteractionRespond(i, resp)
}

func (a sessionAPI) editResponse(i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
	_, err := a.s.InteractionResponseEdit(i, edit)
	return err
}

func (a sessionAPI) sendComplex(channelID string, msg *discordgo.MessageSend) error {
	_, err := a.s.ChannelMessageSendComplex(channelID, msg)
	return err
}

func (a sessionAPI) messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return a.s.ChannelMessages(channelID, limit, beforeID, "", "")
}

func (a sessionAPI) bulkDelete(channelID string, messageIDs []string) error {
	return a.s.ChannelMessagesBulkDelete(channelID, messageIDs)
}

func (a sessionAPI) deleteMessage(channelID string, messageID string) error {
	return a.s.ChannelMessageDelete(channelID, messageID)
}

// Bot owns the gateway session, the interaction router and the maintenance
// sweep. Construction is pure; Run connects.
type Bot struct {
	cfg     config.DiscordConfig
	cleanup config.CleanupConfig

	session  *discordgo.Session
	api      interactionAPI
	channels channelAPI
	router   *Router

	reports  *reports.Service
	diplomas *diplomas.Service
}

func NewBot(cfg config.Config, reportSvc *reports.Service, diplomaSvc *diplomas.Service) (*Bot, error) {
	if reportSvc == nil || diplomaSvc == nil {
		return nil, errors.New("report and diploma services are required")
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, errs.Wrap(err, "create discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	api := sessionAPI{s: session}
	b := &Bot{
		cfg:      cfg.Discord,
		cleanup:  cfg.Cleanup,
		session:  session,
		api:      api,
		channels: api,
		reports:  reportSvc,
		diplomas: diplomaSvc,
	}
	b.router = b.buildRouter()
	return b, nil
}

// Run connects to the gateway and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logging.Info(ctx, "discord session ready",
			slog.String("user", r.User.Username),
			slog.Int("guilds", len(r.Guilds)),
		)
	})
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.router.Dispatch(ctx, i)
	})

	if err := b.session.Open(); err != nil {
		return errs.Wrap(err, "open discord gateway")
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			logging.Warn(ctx, "close discord session failed", slog.Any("err", errs.Loggable(err)))
		}
	}()

	if b.cleanup.Enabled && b.cleanup.ChannelID != "" {
		go b.cleanupLoop(ctx)
	}

	<-ctx.Done()
	logging.Info(ctx, "discord bot shutting down")
	return nil
}

// DeployCommands overwrites the guild's slash commands with the bot's set.
func (b *Bot) DeployCommands(ctx context.Context) (int, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if b.cfg.AppID == "" || b.cfg.GuildID == "" {
		return 0, errors.New("discord.app_id and discord.guild_id are required")
	}

	created, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.AppID, b.cfg.GuildID, commandDefinitions())
	if err != nil {
		return 0, errs.Wrap(err, "overwrite guild commands")
	}

	logging.Info(ctx, "guild commands deployed", slog.Int("count", len(created)))
	return len(created), nil
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "отримати_диплом",
			Description: "Заповни форму, щоб отримати диплом (Прізвище/Імʼя/Стать).",
		},
		{
			Name:        "op_report",
			Description: "Створити звіт про оперативне втручання (відкриває модаль).",
		},
		{
			Name:        "op_history",
			Description: "Пошук звітів (по прізвищу/імʼя, static або номеру).",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "by",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Пошук по полю: name | static | id",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "name", Value: "name"},
						{Name: "static", Value: "static"},
						{Name: "id", Value: "id"},
					},
				},
				{
					Name:        "query",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "Текст пошуку (наприклад: Петренко або 83031 або 12)",
					Required:    true,
				},
			},
		},
		{
			Name:        "op_list",
			Description: "Показати останні N звітів (за замовчуванням 5).",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "limit",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Description: "Кількість записів",
					Required:    false,
				},
			},
		},
		{
			Name:        "setup_buttons",
			Description: "Створити повідомлення з кнопками для звітів (тільки для адмінів).",
		},
	}
}
