package engine

import (
	"context"
	"time"
)

// voteSweepInterval bounds how stale an expired vote window can stay marked.
const voteSweepInterval = 60 * time.Second

// RunMaintenance starts the three background sweeps and blocks until ctx is
// cancelled. Sweeps take the same per-user locks as the request path, so a
// sweep and a live message never race on one record.
//
//   - midnight UTC: bond decay for idle users, streak breaking
//   - midnight UTC: premium term expiry / renewal
//   - every minute: clear spent 12-hour vote windows
func (e *Engine) RunMaintenance(ctx context.Context) {
	go e.runMidnightSweeps(ctx)
	go e.runVoteSweep(ctx)
	<-ctx.Done()
}

func (e *Engine) runMidnightSweeps(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(untilNextMidnightUTC(e.now())):
		}
		e.sweepDecay(ctx)
		e.sweepPremium(ctx)
		if err := e.store.Flush(); err != nil {
			e.log.Error().Err(err).Msg("maintenance flush failed")
		}
	}
}

func (e *Engine) runVoteSweep(ctx context.Context) {
	ticker := time.NewTicker(voteSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweepVotes(ctx)
		}
	}
}

// sweepDecay walks all users and applies inactivity decay. Errors on one
// record are logged and the sweep moves on.
func (e *Engine) sweepDecay(ctx context.Context) {
	now := e.now()
	for _, id := range e.store.UserIDs() {
		if ctx.Err() != nil {
			return
		}
		err := e.store.WithUser(id, func(rec *UserRecord) error {
			before := rec.Bond
			dailyDecay(rec, now)
			if rec.Bond != before {
				e.log.Debug().Str("user", id).Int("bond", rec.Bond).Msg("bond decayed")
			}
			return nil
		})
		if err != nil {
			e.log.Error().Err(err).Str("user", id).Msg("decay sweep failed for user")
		}
	}
}

// sweepPremium applies the subscription-cycle rule to every premium user.
func (e *Engine) sweepPremium(ctx context.Context) {
	now := e.now()
	for _, id := range e.store.UserIDs() {
		if ctx.Err() != nil {
			return
		}
		err := e.store.WithUser(id, func(rec *UserRecord) error {
			e.expirePremiumUser(rec, id, now)
			return nil
		})
		if err != nil {
			e.log.Error().Err(err).Str("user", id).Msg("premium sweep failed for user")
		}
	}
}

// sweepVotes re-arms the vote reward for users whose 12-hour window has
// passed.
func (e *Engine) sweepVotes(ctx context.Context) {
	now := e.now()
	for _, id := range e.store.UserIDs() {
		if ctx.Err() != nil {
			return
		}
		err := e.store.WithUser(id, func(rec *UserRecord) error {
			if !rec.PointReceivedForVote || rec.LastVotedAt == nil {
				return nil
			}
			if now.Sub(*rec.LastVotedAt) < VoteWindow {
				return nil
			}
			rec.PointReceivedForVote = false
			rec.LastVotedAt = nil
			return nil
		})
		if err != nil {
			e.log.Error().Err(err).Str("user", id).Msg("vote sweep failed for user")
		}
	}
}

func untilNextMidnightUTC(now time.Time) time.Duration {
	next := utcDate(now).Add(24 * time.Hour)
	return next.Sub(now)
}
