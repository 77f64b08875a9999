package discord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"zvitbot/internal/bootstrap/config"
)

type fakeChannelAPI struct {
	pages [][]*discordgo.Message

	messageCalls []string
	bulkDeleted  [][]string
	deleted      []string
	sent         []*discordgo.MessageSend
}

func (f *fakeChannelAPI) sendComplex(_ string, msg *discordgo.MessageSend) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeChannelAPI) messages(_ string, _ int, beforeID string) ([]*discordgo.Message, error) {
	f.messageCalls = append(f.messageCalls, beforeID)
	if len(f.pages) == 0 {
		return nil, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeChannelAPI) bulkDelete(_ string, messageIDs []string) error {
	f.bulkDeleted = append(f.bulkDeleted, messageIDs)
	return nil
}

func (f *fakeChannelAPI) deleteMessage(_ string, messageID string) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func message(id string, age time.Duration, components int) *discordgo.Message {
	msg := &discordgo.Message{ID: id, Timestamp: time.Now().Add(-age)}
	for i := 0; i < components; i++ {
		msg.Components = append(msg.Components, discordgo.ActionsRow{})
	}
	return msg
}

func cleanupBot(channels *fakeChannelAPI) *Bot {
	return &Bot{
		cleanup:  config.CleanupConfig{ChannelID: "chan-1", Interval: time.Minute},
		channels: channels,
	}
}

func TestCleanupSplitsBulkAndIndividualDeletes(t *testing.T) {
	channels := &fakeChannelAPI{pages: [][]*discordgo.Message{{
		message("10", time.Hour, 0),
		message("9", 2*time.Hour, 0),
		message("8", 3*time.Hour, 1),
		message("7", 20*24*time.Hour, 0),
		message("6", 30*24*time.Hour, 0),
	}}}
	b := cleanupBot(channels)

	removed, err := b.cleanupChannel(context.Background(), "chan-1")
	if err != nil {
		t.Fatalf("cleanupChannel: %v", err)
	}
	if removed != 4 {
		t.Fatalf("expected 4 removed, got %d", removed)
	}

	if len(channels.bulkDeleted) != 1 {
		t.Fatalf("expected one bulk call, got %d", len(channels.bulkDeleted))
	}
	bulk := channels.bulkDeleted[0]
	if len(bulk) != 2 || bulk[0] != "10" || bulk[1] != "9" {
		t.Fatalf("unexpected bulk ids %v", bulk)
	}

	if len(channels.deleted) != 2 || channels.deleted[0] != "7" || channels.deleted[1] != "6" {
		t.Fatalf("unexpected individual deletions %v", channels.deleted)
	}
}

func TestCleanupKeepsMessagesWithComponents(t *testing.T) {
	channels := &fakeChannelAPI{pages: [][]*discordgo.Message{{
		message("panel", time.Hour, 3),
	}}}
	b := cleanupBot(channels)

	removed, err := b.cleanupChannel(context.Background(), "chan-1")
	if err != nil {
		t.Fatalf("cleanupChannel: %v", err)
	}
	if removed != 0 || len(channels.bulkDeleted) != 0 || len(channels.deleted) != 0 {
		t.Fatalf("panel message must survive: removed=%d bulk=%v deleted=%v",
			removed, channels.bulkDeleted, channels.deleted)
	}
}

func TestCleanupFallsBackToSingleDelete(t *testing.T) {
	channels := &fakeChannelAPI{pages: [][]*discordgo.Message{{
		message("lonely", time.Hour, 0),
	}}}
	b := cleanupBot(channels)

	removed, err := b.cleanupChannel(context.Background(), "chan-1")
	if err != nil {
		t.Fatalf("cleanupChannel: %v", err)
	}
	if removed != 1 || len(channels.bulkDeleted) != 0 {
		t.Fatalf("single recent message must use individual delete: removed=%d bulk=%v",
			removed, channels.bulkDeleted)
	}
	if len(channels.deleted) != 1 || channels.deleted[0] != "lonely" {
		t.Fatalf("unexpected deletions %v", channels.deleted)
	}
}

func TestCleanupPagesUntilShortPage(t *testing.T) {
	first := make([]*discordgo.Message, 0, cleanupPageSize)
	for i := 0; i < cleanupPageSize; i++ {
		first = append(first, message(fmt.Sprintf("a%03d", i), time.Hour, 0))
	}
	second := []*discordgo.Message{message("tail", time.Hour, 0)}

	channels := &fakeChannelAPI{pages: [][]*discordgo.Message{first, second}}
	b := cleanupBot(channels)

	removed, err := b.cleanupChannel(context.Background(), "chan-1")
	if err != nil {
		t.Fatalf("cleanupChannel: %v", err)
	}
	if removed != cleanupPageSize+1 {
		t.Fatalf("expected %d removed, got %d", cleanupPageSize+1, removed)
	}

	if len(channels.messageCalls) != 2 {
		t.Fatalf("expected two pages fetched, got %d", len(channels.messageCalls))
	}
	if channels.messageCalls[0] != "" || channels.messageCalls[1] != first[len(first)-1].ID {
		t.Fatalf("unexpected paging cursors %v", channels.messageCalls)
	}
}
