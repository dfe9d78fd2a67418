package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ProfileView is the read model for the profile command.
type ProfileView struct {
	UserID         string
	Premium        bool
	Style          string
	Bond           int
	BondLevel      int
	Points         int
	Streak         int
	PreviousStreak int
	MemoryPairs    int
	MemoryCap      int // 0 means unlimited
}

// LeaderboardEntry is one row of the bond leaderboard.
type LeaderboardEntry struct {
	UserID string
	Bond   int
	Points int
	Streak int
}

// GiftResult reports a points-for-bond exchange.
type GiftResult struct {
	Spent   int
	NewBond int
	Points  int
}

// Profile returns the user's current state, creating the record if needed.
func (e *Engine) Profile(userID string) (ProfileView, error) {
	var view ProfileView
	err := e.store.WithUser(userID, func(rec *UserRecord) error {
		style := rec.Style
		if style == "" {
			style = DefaultStyle
		}
		memCap := e.cfg.MemoryCap
		if rec.Premium {
			memCap = 0
		}
		view = ProfileView{
			UserID:         userID,
			Premium:        rec.Premium,
			Style:          style,
			Bond:           rec.Bond,
			BondLevel:      rec.BondLevel(),
			Points:         rec.Points,
			Streak:         rec.Streak,
			PreviousStreak: rec.PreviousStreak,
			MemoryPairs:    rec.MemoryPairs(),
			MemoryCap:      memCap,
		}
		return nil
	})
	return view, err
}

// SetStyle selects a personality family for the user.
func (e *Engine) SetStyle(userID, style string) error {
	style = strings.ToLower(strings.TrimSpace(style))
	if !KnownStyle(style) {
		return ErrUnknownStyle
	}
	return e.store.WithUser(userID, func(rec *UserRecord) error {
		rec.Style = style
		return nil
	})
}

// ClearMemory wipes the user's conversation history.
func (e *Engine) ClearMemory(userID string) error {
	return e.store.WithUser(userID, func(rec *UserRecord) error {
		clearMemory(rec)
		return nil
	})
}

// Leaderboard returns up to limit users ranked by bond, then points.
func (e *Engine) Leaderboard(limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = 10
	}
	var rows []LeaderboardEntry
	for _, id := range e.store.UserIDs() {
		rec, ok := e.store.Peek(id)
		if !ok {
			continue
		}
		rows = append(rows, LeaderboardEntry{
			UserID: id,
			Bond:   rec.Bond,
			Points: rec.Points,
			Streak: rec.Streak,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bond != rows[j].Bond {
			return rows[i].Bond > rows[j].Bond
		}
		return rows[i].Points > rows[j].Points
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// GiftPointsForBond spends points to raise bond. amount == 0 means "as much
// as possible": the lesser of what max bond still costs and what the user
// has.
func (e *Engine) GiftPointsForBond(userID string, amount int) (GiftResult, error) {
	var res GiftResult
	err := e.store.WithUser(userID, func(rec *UserRecord) error {
		if amount == 0 {
			toMax := (BondMax - rec.Bond) * PointsPerBondPercent
			amount = toMax
			if rec.Points < amount {
				amount = rec.Points
			}
			if amount <= 0 {
				if rec.Bond >= BondMax {
					return ErrBondMaxed
				}
				return ErrInsufficientPoints
			}
		}
		newBond, err := spendPointsForBond(rec, amount)
		if err != nil {
			return err
		}
		res = GiftResult{Spent: amount, NewBond: newBond, Points: rec.Points}
		return nil
	})
	return res, err
}

// RestoreStreak puts a broken streak back for premium users or confirmed
// voters.
func (e *Engine) RestoreStreak(ctx context.Context, userID string) (int, error) {
	var restored int
	err := e.store.WithUser(userID, func(rec *UserRecord) error {
		if rec.Streak != 0 || rec.PreviousStreak <= 0 {
			return ErrNoStreakToRestore
		}
		if !rec.Premium && !e.hasActiveVote(ctx, userID) {
			return ErrRestoreDenied
		}
		n, err := restoreStreak(rec)
		if err != nil {
			return err
		}
		restored = n
		return nil
	})
	return restored, err
}

// ResetUser removes the user's entire record and quota state.
func (e *Engine) ResetUser(userID string) error {
	e.store.DeleteUser(userID)
	e.quota.Reset(userID)
	return e.store.Flush()
}

// CommandResult is the structured response of HandleCommand.
type CommandResult struct {
	Text string
}

// HandleCommand dispatches a named command for the UI layer. Validation
// errors come back as errors; the caller renders them as user-facing
// rejections.
func (e *Engine) HandleCommand(ctx context.Context, name, userID string, args map[string]string) (*CommandResult, error) {
	switch name {
	case "set-personality":
		if err := e.SetStyle(userID, args["style"]); err != nil {
			return nil, err
		}
		return &CommandResult{Text: fmt.Sprintf("Personality set to **%s**.", strings.ToLower(args["style"]))}, nil

	case "view-profile":
		view, err := e.Profile(userID)
		if err != nil {
			return nil, err
		}
		return &CommandResult{Text: formatProfile(view)}, nil

	case "clear-memory":
		if err := e.ClearMemory(userID); err != nil {
			return nil, err
		}
		return &CommandResult{Text: "Our conversation history is cleared. A fresh start! ✨"}, nil

	case "view-leaderboard":
		return &CommandResult{Text: formatLeaderboard(e.Leaderboard(10))}, nil

	case "gift-points-for-bond":
		amount := 0
		if v := args["amount"]; v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, ErrInvalidAmount
			}
			amount = n
		}
		res, err := e.GiftPointsForBond(userID, amount)
		if err != nil {
			return nil, err
		}
		return &CommandResult{Text: fmt.Sprintf("You gifted **%d** points! Bond is now **%d%%** (%d points left).",
			res.Spent, res.NewBond, res.Points)}, nil

	case "restore-streak":
		n, err := e.RestoreStreak(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &CommandResult{Text: fmt.Sprintf("Welcome back! Your **%d-day** streak is restored. 🔥", n)}, nil

	case "claim-premium":
		if err := e.ClaimPremium(userID, args["email"]); err != nil {
			return nil, err
		}
		return &CommandResult{Text: "Premium activated! Unlimited chats and memories, just for you. 💎"}, nil

	case "reset-all-data":
		if err := e.ResetUser(userID); err != nil {
			return nil, err
		}
		return &CommandResult{Text: "Everything about you has been forgotten. We're strangers again..."}, nil

	default:
		return nil, ErrUnknownCommand
	}
}

func formatProfile(v ProfileView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Bond:** %d%% (level %d)\n", v.Bond, v.BondLevel)
	fmt.Fprintf(&b, "**Points:** %d\n", v.Points)
	fmt.Fprintf(&b, "**Streak:** %d day(s)\n", v.Streak)
	if v.Streak == 0 && v.PreviousStreak > 0 {
		fmt.Fprintf(&b, "**Broken streak:** %d day(s), restorable\n", v.PreviousStreak)
	}
	fmt.Fprintf(&b, "**Personality:** %s\n", v.Style)
	if v.Premium {
		b.WriteString("**Memory:** unlimited 💎\n")
	} else {
		fmt.Fprintf(&b, "**Memory:** %d/%d exchanges\n", v.MemoryPairs, v.MemoryCap)
	}
	return b.String()
}

func formatLeaderboard(rows []LeaderboardEntry) string {
	if len(rows) == 0 {
		return "Nobody has bonded with me yet. Be the first? 👀"
	}
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. <@%s>, bond %d%%, %d points, %d-day streak\n",
			i+1, r.UserID, r.Bond, r.Points, r.Streak)
	}
	return b.String()
}
