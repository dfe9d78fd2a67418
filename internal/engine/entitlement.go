package engine

import (
	"context"
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Resolve reports the current entitlement gate state for a user.
func (e *Engine) Resolve(userID string) (Entitlement, error) {
	var ent Entitlement
	err := e.store.WithUser(userID, func(rec *UserRecord) error {
		ent = Entitlement{Premium: rec.Premium, RewardMultiplier: rec.RewardMultiplier()}
		return nil
	})
	return ent, err
}

// ClaimPremium grants premium if email sits in the allowlist, consuming the
// entry exactly once. Claiming while already premium is a no-op that does not
// touch the allowlist.
func (e *Engine) ClaimPremium(userID, email string) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}

	return e.store.WithUser(userID, func(rec *UserRecord) error {
		if rec.Premium {
			return ErrAlreadyPremium
		}
		if !e.store.ConsumeEmail(email) {
			return ErrEmailNotFound
		}
		now := e.now()
		rec.Premium = true
		rec.PremiumEmail = email
		rec.PremiumClaimedAt = &now
		e.log.Info().Str("user", userID).Msg("premium claimed")
		return nil
	})
}

// AddPremiumEmail adds a confirmed payment email to the allowlist. Privileged
// operation; the caller checks who is asking.
func (e *Engine) AddPremiumEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	e.store.AddEmail(email)
	return nil
}

// expirePremiumUser applies the subscription-cycle rule to one record: after
// one term, a repopulated allowlist entry means renewal (consume again, reset
// the clock); otherwise premium is revoked.
func (e *Engine) expirePremiumUser(rec *UserRecord, userID string, now time.Time) {
	if !rec.Premium || rec.PremiumClaimedAt == nil {
		return
	}
	if now.Sub(*rec.PremiumClaimedAt) < premiumTerm {
		return
	}

	if rec.PremiumEmail != "" && e.store.ConsumeEmail(rec.PremiumEmail) {
		t := now
		rec.PremiumClaimedAt = &t
		e.log.Info().Str("user", userID).Msg("premium renewed")
		return
	}

	rec.Premium = false
	rec.PremiumEmail = ""
	rec.PremiumClaimedAt = nil
	e.log.Info().Str("user", userID).Msg("premium expired")
}

// maybeVoteReward grants the one-time point reward for the current 12-hour
// vote window. The lastVotedAt + pointReceivedForVote pair makes the claim
// idempotent inside a window. A failed vote check counts as "has not voted".
func (e *Engine) maybeVoteReward(ctx context.Context, rec *UserRecord, userID string, now time.Time) int {
	if rec.PointReceivedForVote && rec.LastVotedAt != nil && now.Sub(*rec.LastVotedAt) < VoteWindow {
		return 0
	}

	voted, err := e.votes.HasVoted(ctx, userID)
	if err != nil {
		e.log.Debug().Err(err).Str("user", userID).Msg("vote check failed, treating as not voted")
		return 0
	}
	if !voted {
		return 0
	}

	reward := e.cfg.VoteRewardPoints * rec.RewardMultiplier()
	rec.Points += reward
	t := now
	rec.LastVotedAt = &t
	rec.PointReceivedForVote = true
	e.log.Info().Str("user", userID).Int("points", reward).Msg("vote reward granted")
	return reward
}

// hasActiveVote is the quota-bypass / streak-restore escalation: a live call
// to the listing service, failing closed.
func (e *Engine) hasActiveVote(ctx context.Context, userID string) bool {
	voted, err := e.votes.HasVoted(ctx, userID)
	if err != nil {
		return false
	}
	return voted
}
