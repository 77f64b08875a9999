package discord

import (
	"context"
	"log/slog"
	"time"

	"zvitbot/internal/bootstrap/logging"
)

const (
	cleanupPageSize = 100

	// Discord rejects bulk deletion of messages older than two weeks;
	// those go through individual deletes.
	bulkDeleteHorizon = 14 * 24 * time.Hour
)

// cleanupLoop periodically wipes the configured channel, leaving only
// messages that carry components (the button panel). The first sweep runs
// immediately so a restart does not wait out a full interval.
func (b *Bot) cleanupLoop(ctx context.Context) {
	b.sweep(ctx)

	interval := b.cleanup.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sweep(ctx)
		}
	}
}

func (b *Bot) sweep(ctx context.Context) {
	removed, err := b.cleanupChannel(ctx, b.cleanup.ChannelID)
	if err != nil {
		logging.Warn(ctx, "channel cleanup failed",
			slog.String("channel_id", b.cleanup.ChannelID),
			slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		logging.Info(ctx, "channel cleanup done",
			slog.String("channel_id", b.cleanup.ChannelID),
			slog.Int("removed", removed))
	}
}

// cleanupChannel pages backwards through the channel history and deletes
// everything except messages with components. Recent messages are removed in
// bulk, older ones one by one.
func (b *Bot) cleanupChannel(ctx context.Context, channelID string) (int, error) {
	removed := 0
	beforeID := ""

	for {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		page, err := b.channels.messages(channelID, cleanupPageSize, beforeID)
		if err != nil {
			return removed, err
		}
		if len(page) == 0 {
			return removed, nil
		}
		beforeID = page[len(page)-1].ID

		var bulk []string
		cutoff := time.Now().Add(-bulkDeleteHorizon)
		for _, msg := range page {
			if len(msg.Components) > 0 {
				continue
			}
			if msg.Timestamp.After(cutoff) {
				bulk = append(bulk, msg.ID)
				continue
			}
			if err := b.channels.deleteMessage(channelID, msg.ID); err != nil {
				logging.Warn(ctx, "message delete failed",
					slog.String("message_id", msg.ID),
					slog.String("error", err.Error()))
				continue
			}
			removed++
		}

		if len(bulk) == 1 {
			// the bulk endpoint requires at least two ids
			if err := b.channels.deleteMessage(channelID, bulk[0]); err == nil {
				removed++
			}
		} else if len(bulk) > 1 {
			if err := b.channels.bulkDelete(channelID, bulk); err != nil {
				logging.Warn(ctx, "bulk delete failed",
					slog.String("channel_id", channelID),
					slog.String("error", err.Error()))
			} else {
				removed += len(bulk)
			}
		}

		if len(page) < cleanupPageSize {
			return removed, nil
		}
	}
}
