// Package engine is the per-user engagement state machine: conversation
// memory, bond/points/streak accrual, premium and vote entitlements, and the
// quotas that gate every reply.
package engine

import (
	"errors"
	"time"
)

// Surface identifies where a message arrived. Quota counters are independent
// per surface.
type Surface string

const (
	SurfaceGuild Surface = "guild"
	SurfaceDM    Surface = "dm"
	SurfaceAuto  Surface = "auto"
)

// MemoryEntry is one message of the stored conversation history.
type MemoryEntry struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// UserRecord is the aggregate per-user state, one per Discord user ID.
// Created lazily with defaults on first qualifying interaction; removed only
// by an explicit full reset.
type UserRecord struct {
	Premium          bool       `json:"premium"`
	PremiumEmail     string     `json:"premium_email,omitempty"`
	PremiumClaimedAt *time.Time `json:"premium_claimed_at,omitempty"`

	Style string `json:"style,omitempty"`

	Bond   int `json:"bond"`
	Points int `json:"points"`

	Streak            int        `json:"streak"`
	PreviousStreak    int        `json:"previous_streak"`
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`

	// LastDecayAt marks how far the daily bond decay has been applied, so
	// repeated sweeps never decay the same day twice.
	LastDecayAt *time.Time `json:"last_decay_at,omitempty"`

	LastVotedAt          *time.Time `json:"last_voted_at,omitempty"`
	PointReceivedForVote bool       `json:"point_received_for_vote"`

	MemoryLimitNotice bool          `json:"memory_limit_notice"`
	Memory            []MemoryEntry `json:"memory"`
}

const (
	BondDefault          = 20
	BondMax              = 100
	BondDecayPerDay      = 5
	PointsPerBondPercent = 5

	// VoteWindow is how long one listing-service vote stays active.
	VoteWindow = 12 * time.Hour
)

// premiumTerm is one subscription cycle (average Gregorian month).
var premiumTerm = time.Duration(30.44 * 24 * float64(time.Hour))

// BondLevel maps bond (0..100) to a level 1..6 used to select response tone.
func (r *UserRecord) BondLevel() int {
	switch {
	case r.Bond <= 20:
		return 1
	case r.Bond <= 40:
		return 2
	case r.Bond <= 60:
		return 3
	case r.Bond <= 75:
		return 4
	case r.Bond <= 90:
		return 5
	default:
		return 6
	}
}

// RewardMultiplier is 2 for premium users, 1 otherwise.
func (r *UserRecord) RewardMultiplier() int {
	if r.Premium {
		return 2
	}
	return 1
}

// MemoryPairs counts stored exchange pairs (user message + assistant reply).
func (r *UserRecord) MemoryPairs() int {
	return len(r.Memory) / 2
}

func newUserRecord() *UserRecord {
	return &UserRecord{
		Bond:   BondDefault,
		Memory: []MemoryEntry{},
	}
}

// Entitlement is the resolved gate state for a user.
type Entitlement struct {
	Premium          bool
	RewardMultiplier int
}

// Validation errors: surfaced directly to the user as rejection messages,
// never logged as system faults.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrBondMaxed          = errors.New("bond is already at maximum")
	ErrUnknownStyle       = errors.New("unknown personality style")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailNotFound      = errors.New("email not found in the premium list")
	ErrAlreadyPremium     = errors.New("already premium")
	ErrNoStreakToRestore  = errors.New("no broken streak to restore")
	ErrRestoreDenied      = errors.New("streak restore requires premium or an active vote")
	ErrUnknownCommand     = errors.New("unknown command")
)
