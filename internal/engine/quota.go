package engine

import (
	"sync"
	"time"
)

// QuotaLimiter is a fixed-window response counter keyed by (user, surface).
// State is ephemeral: counters reset on process restart, which is accepted.
//
// This is a fixed window, not a sliding one: a burst at the window boundary
// can yield up to 2N responses within W of each other. Known property.
type QuotaLimiter struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	states map[quotaKey]*quotaState
	now    func() time.Time
}

type quotaKey struct {
	userID  string
	surface Surface
}

type quotaState struct {
	count       int
	windowStart time.Time
	lastWarned  time.Time
}

// Verdict is the outcome of a quota check.
type Verdict struct {
	Allowed    bool
	RetryAfter time.Duration
}

func NewQuotaLimiter(window time.Duration, limit int) *QuotaLimiter {
	if window <= 0 {
		window = time.Hour
	}
	if limit <= 0 {
		limit = 20
	}
	return &QuotaLimiter{
		window: window,
		limit:  limit,
		states: make(map[quotaKey]*quotaState),
		now:    time.Now,
	}
}

// SetClock overrides the limiter's time source. Tests only.
func (q *QuotaLimiter) SetClock(now func() time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
}

// Allow reports whether one more response fits in the current window. It does
// not charge the counter; call Charge once the response is actually produced.
func (q *QuotaLimiter) Allow(userID string, surface Surface) Verdict {
	q.mu.Lock()
	defer q.mu.Unlock()

	st := q.state(userID, surface)
	now := q.now()
	q.maybeReset(st, now)

	if st.count >= q.limit {
		return Verdict{
			Allowed:    false,
			RetryAfter: st.windowStart.Add(q.window).Sub(now),
		}
	}
	return Verdict{Allowed: true}
}

// Charge counts one produced response against the window.
func (q *QuotaLimiter) Charge(userID string, surface Surface) {
	q.mu.Lock()
	defer q.mu.Unlock()

	st := q.state(userID, surface)
	now := q.now()
	q.maybeReset(st, now)
	if st.count == 0 {
		st.windowStart = now
	}
	st.count++
}

// ShouldWarn reports whether a denial warning may be shown, and records that
// it was. Repeat denials inside the same window stay silent.
func (q *QuotaLimiter) ShouldWarn(userID string, surface Surface) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	st := q.state(userID, surface)
	now := q.now()
	q.maybeReset(st, now)

	if !st.lastWarned.IsZero() && !st.lastWarned.Before(st.windowStart) {
		return false
	}
	st.lastWarned = now
	return true
}

// Reset drops all counters for a user (explicit full data reset).
func (q *QuotaLimiter) Reset(userID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, surface := range []Surface{SurfaceGuild, SurfaceDM, SurfaceAuto} {
		delete(q.states, quotaKey{userID, surface})
	}
}

func (q *QuotaLimiter) state(userID string, surface Surface) *quotaState {
	key := quotaKey{userID, surface}
	st, ok := q.states[key]
	if !ok {
		st = &quotaState{}
		q.states[key] = st
	}
	return st
}

// maybeReset zeroes the counter when the window has fully elapsed.
func (q *QuotaLimiter) maybeReset(st *quotaState, now time.Time) {
	if st.windowStart.IsZero() {
		return
	}
	if now.Sub(st.windowStart) > q.window {
		st.count = 0
		st.windowStart = now
		st.lastWarned = time.Time{}
	}
}
