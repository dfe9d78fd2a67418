package discord

import (
	"context"
	"fmt"
	"time"
)

const presenceInterval = 10 * time.Minute

// presenceLoop refreshes the status line with the live guild count and posts
// the count to the bot listing service.
func (b *Bot) presenceLoop(ctx context.Context) {
	b.updatePresence(ctx)

	ticker := time.NewTicker(presenceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.updatePresence(ctx)
		}
	}
}

func (b *Bot) updatePresence(ctx context.Context) {
	n := len(b.dg.State.Guilds)

	status := fmt.Sprintf("%d servers! | /help", n)
	if err := b.dg.UpdateWatchStatus(0, status); err != nil {
		b.log.Warn().Err(err).Msg("presence update failed")
	}

	if b.votes == nil {
		return
	}
	postCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := b.votes.PostStats(postCtx, n); err != nil {
		b.log.Debug().Err(err).Msg("stats post failed")
	}
}
