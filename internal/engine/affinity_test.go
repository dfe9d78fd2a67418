package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestTouchInteraction_StreakProgression(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	rec := newUserRecord()

	// first ever interaction
	awarded := eng.touchInteraction(rec, date(2025, 6, 1, 10))
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, 20, awarded)

	// same day: nothing
	awarded = eng.touchInteraction(rec, date(2025, 6, 1, 23))
	assert.Equal(t, 1, rec.Streak)
	assert.Zero(t, awarded)

	// next calendar day: streak continues even if under 24h apart
	awarded = eng.touchInteraction(rec, date(2025, 6, 2, 0))
	assert.Equal(t, 2, rec.Streak)
	assert.Equal(t, 30, awarded)

	// a missed day breaks the streak and keeps a snapshot
	awarded = eng.touchInteraction(rec, date(2025, 6, 4, 10))
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, 2, rec.PreviousStreak)
	assert.Equal(t, 20, awarded)
}

func TestTouchInteraction_PremiumDoublesReward(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	rec := newUserRecord()
	rec.Premium = true

	awarded := eng.touchInteraction(rec, date(2025, 6, 1, 10))
	assert.Equal(t, 40, awarded) // (10 + 10*1) * 2
}

func TestDailyDecay_SweepCadenceDoesNotMatter(t *testing.T) {
	last := date(2025, 6, 1, 10)

	// one sweep after five idle days
	once := newUserRecord()
	once.Bond = 80
	once.LastInteractionAt = &last
	dailyDecay(once, date(2025, 6, 6, 0))

	// five daily sweeps
	daily := newUserRecord()
	daily.Bond = 80
	daily.LastInteractionAt = &last
	for d := 2; d <= 6; d++ {
		dailyDecay(daily, date(2025, 6, d, 0))
	}

	assert.Equal(t, 80-5*BondDecayPerDay, once.Bond)
	assert.Equal(t, once.Bond, daily.Bond)
}

func TestDailyDecay_FlooredAtZeroAndBreaksStreak(t *testing.T) {
	last := date(2025, 6, 1, 10)
	rec := newUserRecord()
	rec.Bond = 7
	rec.Streak = 9
	rec.LastInteractionAt = &last

	dailyDecay(rec, date(2025, 6, 10, 0))
	assert.Zero(t, rec.Bond)
	assert.Zero(t, rec.Streak)
	assert.Equal(t, 9, rec.PreviousStreak)
}

func TestDailyDecay_SameDayNoOp(t *testing.T) {
	last := date(2025, 6, 1, 10)
	rec := newUserRecord()
	rec.Bond = 50
	rec.LastInteractionAt = &last

	dailyDecay(rec, date(2025, 6, 1, 23))
	assert.Equal(t, 50, rec.Bond)
	assert.Nil(t, rec.LastDecayAt)
}

func TestSpendPointsForBond(t *testing.T) {
	rec := newUserRecord() // bond 20
	rec.Points = 400

	newBond, err := spendPointsForBond(rec, 400)
	require.NoError(t, err)
	assert.Equal(t, 100, newBond)
	assert.Zero(t, rec.Points)

	// maxed out
	rec.Points = 50
	_, err = spendPointsForBond(rec, 50)
	assert.ErrorIs(t, err, ErrBondMaxed)
	assert.Equal(t, 50, rec.Points)
}

func TestSpendPointsForBond_Clamp(t *testing.T) {
	rec := newUserRecord()
	rec.Bond = 95
	rec.Points = 1000

	// 100 points would give 20%, but bond clamps at 100 while the full
	// amount is still deducted
	newBond, err := spendPointsForBond(rec, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, newBond)
	assert.Equal(t, 900, rec.Points)
}

func TestSpendPointsForBond_Validation(t *testing.T) {
	rec := newUserRecord()
	rec.Points = 10

	_, err := spendPointsForBond(rec, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = spendPointsForBond(rec, -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = spendPointsForBond(rec, 11)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 10, rec.Points)
}

func TestRestoreStreak(t *testing.T) {
	rec := newUserRecord()
	rec.PreviousStreak = 7

	n, err := restoreStreak(rec)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 7, rec.Streak)
	assert.Zero(t, rec.PreviousStreak)

	// nothing left to restore
	_, err = restoreStreak(rec)
	assert.ErrorIs(t, err, ErrNoStreakToRestore)
}

func TestBondLevels(t *testing.T) {
	cases := map[int]int{0: 1, 20: 1, 21: 2, 40: 2, 41: 3, 60: 3, 61: 4, 75: 4, 76: 5, 90: 5, 91: 6, 100: 6}
	for bond, level := range cases {
		rec := &UserRecord{Bond: bond}
		assert.Equalf(t, level, rec.BondLevel(), "bond %d", bond)
	}
}
