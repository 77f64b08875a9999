package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/domain/diploma"
	"zvitbot/internal/errs"
)

const genericFailureMessage = "❌ Сталася помилка."

// Event is one inbound interaction plus its response tracker.
type Event struct {
	Interaction *discordgo.InteractionCreate
	Responder   *responder

	// Values holds modal text-input values keyed by component custom id;
	// nil for non-modal interactions.
	Values map[string]string

	// Kind is set for diploma modal submissions, recovered from the
	// custom-id prefix before dispatch.
	Kind diploma.Kind
}

// Handler processes one classified interaction and produces its terminal
// response through the event's responder.
type Handler func(ctx context.Context, ev *Event) error

// Router is a flat dispatch table keyed by exact discriminator string. The
// only non-exact rule is the diploma modal prefix, handled as a typed parsing
// step rather than inline string slicing.
type Router struct {
	api interactionAPI

	commands     map[string]Handler
	buttons      map[string]Handler
	modals       map[string]Handler
	diplomaModal Handler
}

func NewRouter(api interactionAPI) *Router {
	return &Router{
		api:      api,
		commands: make(map[string]Handler),
		buttons:  make(map[string]Handler),
		modals:   make(map[string]Handler),
	}
}

func (r *Router) Command(name string, h Handler)    { r.commands[name] = h }
func (r *Router) Button(customID string, h Handler) { r.buttons[customID] = h }
func (r *Router) Modal(customID string, h Handler)  { r.modals[customID] = h }

// DiplomaModal registers the prefix-matched diploma form handler.
func (r *Router) DiplomaModal(h Handler) { r.diplomaModal = h }

// Dispatch classifies and handles one interaction. Any error or panic from a
// handler is absorbed here: the user gets a generic failure message and the
// process keeps running.
func (r *Router) Dispatch(ctx context.Context, i *discordgo.InteractionCreate) {
	handler, ev, discriminator := r.classify(i)

	ctx = logging.WithInteraction(ctx, interactionKindString(i.Type), discriminator)

	if handler == nil {
		logging.Warn(ctx, "no handler for interaction")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.failSafe(ctx, ev, fmt.Errorf("handler panic: %v", rec))
		}
	}()

	if err := handler(ctx, ev); err != nil {
		r.failSafe(ctx, ev, err)
	}
}

func (r *Router) classify(i *discordgo.InteractionCreate) (Handler, *Event, string) {
	ev := &Event{
		Interaction: i,
		Responder:   newResponder(r.api, i.Interaction),
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		return r.commands[name], ev, name

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		return r.buttons[customID], ev, customID

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		ev.Values = modalValues(data)

		if handler, ok := r.modals[data.CustomID]; ok {
			return handler, ev, data.CustomID
		}
		if kind, ok := diploma.ParseModalID(data.CustomID); ok && r.diplomaModal != nil {
			ev.Kind = kind
			return r.diplomaModal, ev, data.CustomID
		}
		return nil, ev, data.CustomID
	}

	return nil, ev, ""
}

// failSafe turns any handler failure into the generic user-visible message,
// respecting the acknowledgment state reached so far. It never propagates.
func (r *Router) failSafe(ctx context.Context, ev *Event, cause error) {
	logging.Error(ctx, "interaction handling failed", slog.Any("err", errs.Loggable(cause)))

	if ev == nil || ev.Responder == nil || ev.Responder.Terminal() {
		return
	}

	var err error
	if ev.Responder.Deferred() {
		err = ev.Responder.Edit(genericFailureMessage)
	} else {
		err = ev.Responder.ReplyEphemeral(genericFailureMessage)
	}
	if err != nil {
		logging.Error(ctx, "failure fallback response failed", slog.Any("err", errs.Loggable(err)))
	}
}

func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

func interactionKindString(t discordgo.InteractionType) string {
	switch t {
	case discordgo.InteractionApplicationCommand:
		return "command"
	case discordgo.InteractionMessageComponent:
		return "component"
	case discordgo.InteractionModalSubmit:
		return "modal"
	default:
		return fmt.Sprintf("type_%d", t)
	}
}
