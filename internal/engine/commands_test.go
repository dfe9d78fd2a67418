package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCommand_SetPersonality(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})

	res, err := eng.HandleCommand(context.Background(), "set-personality", "42", map[string]string{"style": "Tsundere"})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "tsundere")

	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, "tsundere", rec.Style)

	_, err = eng.HandleCommand(context.Background(), "set-personality", "42", map[string]string{"style": "alien"})
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestHandleCommand_GiftExplicitAmount(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.Points = 100
		return nil
	}))

	res, err := eng.HandleCommand(context.Background(), "gift-points-for-bond", "42", map[string]string{"amount": "50"})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "30%") // 20 + 50/5

	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, 30, rec.Bond)
	assert.Equal(t, 50, rec.Points)
}

func TestHandleCommand_GiftDefaultAmount(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})

	// plenty of points: default spends exactly what max bond costs
	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.Points = 1000
		return nil
	}))
	_, err := eng.HandleCommand(context.Background(), "gift-points-for-bond", "42", nil)
	require.NoError(t, err)
	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, 100, rec.Bond)
	assert.Equal(t, 600, rec.Points) // (100-20)*5 spent

	// few points: default spends everything the user has
	require.NoError(t, eng.Store().WithUser("43", func(rec *UserRecord) error {
		rec.Points = 12
		return nil
	}))
	_, err = eng.HandleCommand(context.Background(), "gift-points-for-bond", "43", nil)
	require.NoError(t, err)
	rec, _ = eng.Store().Peek("43")
	assert.Equal(t, 22, rec.Bond) // 12/5 floored
	assert.Zero(t, rec.Points)
}

func TestHandleCommand_GiftRejections(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})

	_, err := eng.HandleCommand(context.Background(), "gift-points-for-bond", "42", map[string]string{"amount": "nope"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = eng.HandleCommand(context.Background(), "gift-points-for-bond", "42", map[string]string{"amount": "10"})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.Bond = BondMax
		rec.Points = 50
		return nil
	}))
	_, err = eng.HandleCommand(context.Background(), "gift-points-for-bond", "42", nil)
	assert.ErrorIs(t, err, ErrBondMaxed)
}

func TestHandleCommand_RestoreStreak(t *testing.T) {
	eng, _, checker, _ := newTestEngine(t, Config{})
	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.PreviousStreak = 5
		return nil
	}))

	// neither premium nor voted
	_, err := eng.HandleCommand(context.Background(), "restore-streak", "42", nil)
	assert.ErrorIs(t, err, ErrRestoreDenied)

	// an active vote unlocks it
	checker.voted = true
	res, err := eng.HandleCommand(context.Background(), "restore-streak", "42", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Text, "5")

	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, 5, rec.Streak)
	assert.Zero(t, rec.PreviousStreak)

	// nothing left
	_, err = eng.HandleCommand(context.Background(), "restore-streak", "42", nil)
	assert.ErrorIs(t, err, ErrNoStreakToRestore)
}

func TestHandleCommand_RestoreStreakPremium(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.Premium = true
		rec.PreviousStreak = 3
		return nil
	}))

	_, err := eng.HandleCommand(context.Background(), "restore-streak", "42", nil)
	require.NoError(t, err)
}

func TestHandleCommand_Profile(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{MemoryCap: 25})

	res, err := eng.HandleCommand(context.Background(), "view-profile", "42", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Text, "20%")
	assert.Contains(t, res.Text, "default")
}

func TestHandleCommand_Leaderboard(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	seed := map[string]int{"a": 30, "b": 90, "c": 60}
	for id, bond := range seed {
		bond := bond
		require.NoError(t, eng.Store().WithUser(id, func(rec *UserRecord) error {
			rec.Bond = bond
			return nil
		}))
	}

	rows := eng.Leaderboard(2)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].UserID)
	assert.Equal(t, "c", rows[1].UserID)
}

func TestHandleCommand_ResetAllData(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{QuotaLimit: 1})

	_, err := eng.HandleInboundMessage(context.Background(), inbound("42", "hi"))
	require.NoError(t, err)

	_, err = eng.HandleCommand(context.Background(), "reset-all-data", "42", nil)
	require.NoError(t, err)

	_, ok := eng.Store().Peek("42")
	assert.False(t, ok)

	// quota counters are gone too: the next message goes straight through
	reply, err := eng.HandleInboundMessage(context.Background(), inbound("42", "fresh start"))
	require.NoError(t, err)
	assert.Equal(t, "hello there!", reply)

	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, BondDefault, rec.Bond)
}

func TestHandleCommand_Unknown(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	_, err := eng.HandleCommand(context.Background(), "does-not-exist", "42", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestHandleCommand_ClaimPremiumFlow(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})
	require.NoError(t, eng.AddPremiumEmail("buyer@example.com"))

	res, err := eng.HandleCommand(context.Background(), "claim-premium", "42",
		map[string]string{"email": "buyer@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Text)

	rec, _ := eng.Store().Peek("42")
	assert.True(t, rec.Premium)
}
