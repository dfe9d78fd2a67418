package engine

import (
	"time"
)

// utcDate truncates a time to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole calendar days from a to b (UTC dates).
func daysBetween(a, b time.Time) int {
	return int(utcDate(b).Sub(utcDate(a)) / (24 * time.Hour))
}

// touchInteraction updates streak and points for one qualifying interaction.
//
// Streak rule: strictly consecutive calendar days. An interaction exactly one
// day after the last continues the streak; a longer gap snapshots the old
// streak (for paid/voted restoration) and starts a fresh one at day 1. Same
// day changes nothing. lastInteractionAt is always advanced.
func (e *Engine) touchInteraction(rec *UserRecord, now time.Time) (awarded int) {
	defer func() {
		t := now
		rec.LastInteractionAt = &t
	}()

	if rec.LastInteractionAt == nil {
		rec.Streak = 1
		awarded = streakReward(rec)
		rec.Points += awarded
		return awarded
	}

	switch gap := daysBetween(*rec.LastInteractionAt, now); {
	case gap <= 0:
		return 0
	case gap == 1:
		rec.Streak++
	default:
		rec.PreviousStreak = rec.Streak
		rec.Streak = 1
	}
	awarded = streakReward(rec)
	rec.Points += awarded
	return awarded
}

// streakReward is the daily point award: 10 + 10*streak, doubled for premium.
func streakReward(rec *UserRecord) int {
	return (10 + 10*rec.Streak) * rec.RewardMultiplier()
}

// dailyDecay applies inactivity decay to one record during the midnight-UTC
// sweep. Bond drops 5 per idle day, floored at 0. A gap of more than one day
// breaks the streak, keeping a snapshot for restoration.
//
// Decay is measured from the later of last interaction and last decay, so a
// sweep that runs every day and a sweep that catches up after d days remove
// the same total.
func dailyDecay(rec *UserRecord, now time.Time) {
	if rec.LastInteractionAt == nil {
		return
	}

	since := *rec.LastInteractionAt
	if rec.LastDecayAt != nil && rec.LastDecayAt.After(since) {
		since = *rec.LastDecayAt
	}

	days := daysBetween(since, now)
	if days <= 0 {
		return
	}

	rec.Bond -= BondDecayPerDay * days
	if rec.Bond < 0 {
		rec.Bond = 0
	}
	t := now
	rec.LastDecayAt = &t

	if daysBetween(*rec.LastInteractionAt, now) > 1 && rec.Streak > 0 {
		rec.PreviousStreak = rec.Streak
		rec.Streak = 0
	}
}

// spendPointsForBond converts points to bond at 5 points per 1%. The exact
// amount is deducted; the bond delta is floored and clamped at 100.
func spendPointsForBond(rec *UserRecord, amount int) (newBond int, err error) {
	if amount <= 0 {
		return rec.Bond, ErrInvalidAmount
	}
	if rec.Bond >= BondMax {
		return rec.Bond, ErrBondMaxed
	}
	if amount > rec.Points {
		return rec.Bond, ErrInsufficientPoints
	}

	rec.Points -= amount
	rec.Bond += amount / PointsPerBondPercent
	if rec.Bond > BondMax {
		rec.Bond = BondMax
	}
	return rec.Bond, nil
}

// restoreStreak puts a broken streak back. Eligibility (premium or an active
// vote) is checked by the caller.
func restoreStreak(rec *UserRecord) (restored int, err error) {
	if rec.Streak != 0 || rec.PreviousStreak <= 0 {
		return 0, ErrNoStreakToRestore
	}
	rec.Streak = rec.PreviousStreak
	rec.PreviousStreak = 0
	return rec.Streak, nil
}
