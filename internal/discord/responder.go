package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/errs"
)

var (
	// ErrAlreadyResponded guards the one-terminal-response rule: an
	// interaction that produced its terminal response must never produce
	// another.
	ErrAlreadyResponded = errors.New("interaction already has a terminal response")

	// ErrNotDeferred is returned when Edit is called before Defer.
	ErrNotDeferred = errors.New("interaction was not deferred")
)

type ackState int

const (
	statePending ackState = iota
	stateDeferred
	stateTerminal
)

// responder tracks the acknowledgment state of one interaction:
// received -> (direct-reply | deferred) -> terminal.
type responder struct {
	api         interactionAPI
	interaction *discordgo.Interaction
	state       ackState
}

func newResponder(api interactionAPI, interaction *discordgo.Interaction) *responder {
	return &responder{api: api, interaction: interaction}
}

func (r *responder) Deferred() bool { return r.state == stateDeferred }
func (r *responder) Terminal() bool { return r.state == stateTerminal }

// ShowModal presents a form. Terminal for this interaction; the form's
// submission arrives as a new interaction.
func (r *responder) ShowModal(data *discordgo.InteractionResponseData) error {
	if r.state != statePending {
		return ErrAlreadyResponded
	}

	if err := r.api.respond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	}); err != nil {
		return errs.Wrap(err, "show modal")
	}
	r.state = stateTerminal
	return nil
}

// Defer acknowledges the interaction with an invoker-only pending state.
func (r *responder) Defer() error {
	if r.state != statePending {
		return ErrAlreadyResponded
	}

	if err := r.api.respond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		return errs.Wrap(err, "defer interaction")
	}
	r.state = stateDeferred
	return nil
}

// ReplyEphemeral sends a direct invoker-only terminal reply.
func (r *responder) ReplyEphemeral(content string) error {
	return r.reply(&discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// ReplyComplex sends a direct terminal reply with arbitrary payload, visible
// to the channel (used by the button panel).
func (r *responder) ReplyComplex(data *discordgo.InteractionResponseData) error {
	return r.reply(data)
}

func (r *responder) reply(data *discordgo.InteractionResponseData) error {
	if r.state != statePending {
		return ErrAlreadyResponded
	}

	if err := r.api.respond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		return errs.Wrap(err, "reply to interaction")
	}
	r.state = stateTerminal
	return nil
}

// Edit finalizes a deferred interaction with its terminal content.
func (r *responder) Edit(content string) error {
	switch r.state {
	case stateTerminal:
		return ErrAlreadyResponded
	case statePending:
		return ErrNotDeferred
	}

	if err := r.api.editResponse(r.interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		return errs.Wrap(err, "edit deferred response")
	}
	r.state = stateTerminal
	return nil
}
