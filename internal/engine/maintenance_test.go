package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDecayAppliesToIdleUsers(t *testing.T) {
	eng, _, _, clock := newTestEngine(t, Config{})

	_, err := eng.HandleInboundMessage(context.Background(), inbound("42", "hi"))
	require.NoError(t, err)
	require.NoError(t, eng.Store().WithUser("42", func(rec *UserRecord) error {
		rec.Bond = 60
		return nil
	}))

	clock.advance(3 * 24 * time.Hour)
	eng.sweepDecay(context.Background())

	rec, _ := eng.Store().Peek("42")
	assert.Equal(t, 60-3*BondDecayPerDay, rec.Bond)

	// a second sweep the same day removes nothing more
	eng.sweepDecay(context.Background())
	rec, _ = eng.Store().Peek("42")
	assert.Equal(t, 60-3*BondDecayPerDay, rec.Bond)
}

func TestSweepVotesClearsExpiredWindows(t *testing.T) {
	eng, _, checker, clock := newTestEngine(t, Config{VoteRewardPoints: 100})
	checker.voted = true

	_, err := eng.HandleInboundMessage(context.Background(), inbound("42", "hi"))
	require.NoError(t, err)
	rec, _ := eng.Store().Peek("42")
	require.True(t, rec.PointReceivedForVote)

	// inside the window: untouched
	clock.advance(6 * time.Hour)
	eng.sweepVotes(context.Background())
	rec, _ = eng.Store().Peek("42")
	assert.True(t, rec.PointReceivedForVote)

	// past the window: re-armed
	clock.advance(7 * time.Hour)
	eng.sweepVotes(context.Background())
	rec, _ = eng.Store().Peek("42")
	assert.False(t, rec.PointReceivedForVote)
	assert.Nil(t, rec.LastVotedAt)
}

func TestUntilNextMidnightUTC(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Minute, untilNextMidnightUTC(now))

	midnight := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, untilNextMidnightUTC(midnight))
}

func TestRunMaintenanceStopsOnCancel(t *testing.T) {
	eng, _, _, _ := newTestEngine(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		eng.RunMaintenance(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("maintenance did not stop on cancel")
	}
}
