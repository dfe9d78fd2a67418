package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"aiko-bot/internal/ai"
	"aiko-bot/internal/votes"
)

// CompletionApology replaces the AI reply when the completion call fails.
// The failed turn leaves no trace: no memory append, no affinity update.
const CompletionApology = "Mmh... my thoughts got all tangled up just now. 😵‍💫 Give me a moment and ask again?"

// PersistFailureReply is sent when the record could not be saved.
const PersistFailureReply = "Something went wrong on my side... please try again in a bit."

// Config tunes the engine's gates.
type Config struct {
	QuotaWindow      time.Duration
	QuotaLimit       int
	MemoryCap        int
	VoteRewardPoints int
}

// Engine drives every qualifying message through quota, memory, completion
// and affinity, and owns the maintenance sweeps. All per-user mutation is
// serialized by the store's keyed locks.
type Engine struct {
	store    *UserStore
	quota    *QuotaLimiter
	provider ai.Provider
	votes    votes.Checker
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// InboundMessage is one qualifying chat event.
type InboundMessage struct {
	UserID   string
	Username string
	Content  string
	Surface  Surface
}

func New(store *UserStore, provider ai.Provider, voteChecker votes.Checker, cfg Config, log zerolog.Logger) *Engine {
	if cfg.MemoryCap <= 0 {
		cfg.MemoryCap = 25
	}
	if cfg.VoteRewardPoints <= 0 {
		cfg.VoteRewardPoints = 100
	}
	return &Engine{
		store:    store,
		quota:    NewQuotaLimiter(cfg.QuotaWindow, cfg.QuotaLimit),
		provider: provider,
		votes:    voteChecker,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// SetClock overrides the engine's time source. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.quota.SetClock(now)
}

// Store exposes the user store (for the privileged data-dump command).
func (e *Engine) Store() *UserStore { return e.store }

// HandleInboundMessage runs one qualifying event through the state machine.
// The returned string is the reply to send; empty means stay silent
// (suppressed quota warning). The error is only ever a persistence failure;
// everything else degrades to a safe reply.
func (e *Engine) HandleInboundMessage(ctx context.Context, msg InboundMessage) (string, error) {
	now := e.now()
	var reply string

	err := e.store.WithUser(msg.UserID, func(rec *UserRecord) error {
		charged := true // premium and vote bypass turns are not charged

		// Quota gate. Premium users are exempt entirely.
		if !rec.Premium {
			if v := e.quota.Allow(msg.UserID, msg.Surface); !v.Allowed {
				if !e.hasActiveVote(ctx, msg.UserID) {
					if e.quota.ShouldWarn(msg.UserID, msg.Surface) {
						reply = quotaWarning(v.RetryAfter)
					}
					return nil // denied; no record mutation
				}
				// Confirmed voter: bypass, uncharged.
				charged = false
				e.log.Info().Str("user", msg.UserID).Msg("quota bypassed via vote")
			}
		} else {
			charged = false
		}

		if pts := e.maybeVoteReward(ctx, rec, msg.UserID, now); pts > 0 {
			e.log.Debug().Str("user", msg.UserID).Int("points", pts).Msg("vote reward on interaction")
		}

		// Memory gate: the first over-cap turn is spent on the notice.
		if e.checkMemory(rec) {
			if charged {
				e.quota.Charge(msg.UserID, msg.Surface)
			}
			reply = MemoryFullNotice
			return nil
		}

		out, err := e.provider.Generate(buildContext(systemPrompt(rec, msg.Username), rec, msg.Content))
		if err != nil {
			// CompletionError: apology only, nothing committed this turn.
			e.log.Warn().Err(err).Str("user", msg.UserID).Msg("completion failed")
			reply = CompletionApology
			return errSkipPersist
		}

		appendExchange(rec, msg.Content, out)
		if awarded := e.touchInteraction(rec, now); awarded > 0 {
			e.log.Info().Str("user", msg.UserID).Int("streak", rec.Streak).
				Int("points", awarded).Msg("streak reward")
		}
		if charged {
			e.quota.Charge(msg.UserID, msg.Surface)
		}
		reply = out
		return nil
	})

	if err == errSkipPersist {
		return reply, nil
	}
	if err != nil {
		// PersistenceError: fatal for this request, never for the process.
		e.log.Error().Err(err).Str("user", msg.UserID).Msg("request persistence failed")
		return PersistFailureReply, err
	}

	if err := e.store.Flush(); err != nil {
		e.log.Error().Err(err).Msg("flush after request failed")
		return reply, fmt.Errorf("flush: %w", err)
	}
	return reply, nil
}

// errSkipPersist aborts WithUser's write-back for turns that must leave the
// record untouched.
var errSkipPersist = fmt.Errorf("skip persist")

func quotaWarning(retryAfter time.Duration) string {
	retryAfter = retryAfter.Round(time.Minute)
	if retryAfter < time.Minute {
		retryAfter = time.Minute
	}
	return fmt.Sprintf(
		"We've chatted so much this hour that I need a tiny break... 😴 "+
			"Come back in about %s, or vote for me on top.gg and we can keep going right now! 💕",
		retryAfter,
	)
}
