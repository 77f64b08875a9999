package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type fakeInteractionAPI struct {
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit

	respondErr error
	editErr    error
}

func (f *fakeInteractionAPI) respond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeInteractionAPI) editResponse(_ *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, edit)
	return nil
}

func newTestResponder(api *fakeInteractionAPI) *responder {
	return newResponder(api, &discordgo.Interaction{ID: "itx-1"})
}

func TestDeferThenEditIsTerminal(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := newTestResponder(api)

	if err := r.Defer(); err != nil {
		t.Fatalf("Defer: %v", err)
	}
	if !r.Deferred() {
		t.Fatal("expected deferred state after Defer")
	}
	if err := r.Edit("done"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !r.Terminal() {
		t.Fatal("expected terminal state after Edit")
	}

	if len(api.responses) != 1 || api.responses[0].Type != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Fatalf("unexpected responses: %+v", api.responses)
	}
	if len(api.edits) != 1 || api.edits[0].Content == nil || *api.edits[0].Content != "done" {
		t.Fatalf("unexpected edits: %+v", api.edits)
	}
}

func TestEditWithoutDeferFails(t *testing.T) {
	r := newTestResponder(&fakeInteractionAPI{})

	if err := r.Edit("too early"); !errors.Is(err, ErrNotDeferred) {
		t.Fatalf("expected ErrNotDeferred, got %v", err)
	}
}

func TestSecondTerminalResponseRejected(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := newTestResponder(api)

	if err := r.ReplyEphemeral("first"); err != nil {
		t.Fatalf("ReplyEphemeral: %v", err)
	}
	if err := r.ReplyEphemeral("second"); !errors.Is(err, ErrAlreadyResponded) {
		t.Fatalf("expected ErrAlreadyResponded, got %v", err)
	}
	if err := r.Defer(); !errors.Is(err, ErrAlreadyResponded) {
		t.Fatalf("expected ErrAlreadyResponded from Defer, got %v", err)
	}
	if err := r.ShowModal(&discordgo.InteractionResponseData{}); !errors.Is(err, ErrAlreadyResponded) {
		t.Fatalf("expected ErrAlreadyResponded from ShowModal, got %v", err)
	}
	if len(api.responses) != 1 {
		t.Fatalf("expected exactly one response sent, got %d", len(api.responses))
	}
}

func TestShowModalIsTerminal(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := newTestResponder(api)

	if err := r.ShowModal(reportModal()); err != nil {
		t.Fatalf("ShowModal: %v", err)
	}
	if !r.Terminal() {
		t.Fatal("expected terminal state after ShowModal")
	}
	if api.responses[0].Type != discordgo.InteractionResponseModal {
		t.Fatalf("unexpected response type %d", api.responses[0].Type)
	}
}

func TestReplyEphemeralSetsFlag(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := newTestResponder(api)

	if err := r.ReplyEphemeral("hi"); err != nil {
		t.Fatalf("ReplyEphemeral: %v", err)
	}
	data := api.responses[0].Data
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatal("expected ephemeral flag on reply")
	}
	if data.Content != "hi" {
		t.Fatalf("unexpected content %q", data.Content)
	}
}

func TestRespondFailureKeepsStatePending(t *testing.T) {
	api := &fakeInteractionAPI{respondErr: errors.New("gateway down")}
	r := newTestResponder(api)

	if err := r.Defer(); err == nil {
		t.Fatal("expected error from failing Defer")
	}
	if r.Deferred() || r.Terminal() {
		t.Fatal("state must stay pending when the acknowledgment failed")
	}
}
