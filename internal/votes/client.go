// Package votes is a thin client for the bot-listing service (top.gg style
// API): per-user vote checks and guild-count reporting.
package votes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aiko-bot/pkg/retrylimit"
)

// VoteCheckError wraps any failure of the vote-check call. Callers treat a
// failed check as "has not voted".
type VoteCheckError struct {
	Err error
}

func (e *VoteCheckError) Error() string { return fmt.Sprintf("vote check: %v", e.Err) }
func (e *VoteCheckError) Unwrap() error { return e.Err }

// Checker reports whether a user has voted for the bot on the listing service.
type Checker interface {
	HasVoted(ctx context.Context, userID string) (bool, error)
}

// Client talks to the top.gg API. A zero token disables the client: HasVoted
// always reports false and PostStats is a no-op.
type Client struct {
	botID   string
	token   string
	base    string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func New(botID, token string) *Client {
	return &Client{
		botID:   botID,
		token:   token,
		base:    "https://top.gg/api",
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 10, 1, 0.5),
	}
}

// SetBotID fills in the bot's application ID once the gateway session is
// open. Call before serving traffic.
func (c *Client) SetBotID(id string) { c.botID = id }

// HasVoted returns true if userID has an active vote. Any transport or API
// failure is returned as VoteCheckError; the caller fails closed.
func (c *Client) HasVoted(ctx context.Context, userID string) (bool, error) {
	if c.token == "" {
		return false, nil
	}

	var voted bool
	err := retrylimit.WithRetryMax(ctx, func() error {
		url := fmt.Sprintf("%s/bots/%s/check?userId=%s", c.base, c.botID, userID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.token)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status=%d body=%s", resp.StatusCode, body)
		}

		var parsed struct {
			Voted int `json:"voted"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return err
		}
		voted = parsed.Voted == 1
		return nil
	}, c.limiter, 2)

	if err != nil {
		return false, &VoteCheckError{Err: err}
	}
	return voted, nil
}

// PostStats reports the current guild count to the listing service.
func (c *Client) PostStats(ctx context.Context, guildCount int) error {
	if c.token == "" {
		return nil
	}

	payload, _ := json.Marshal(map[string]int{"server_count": guildCount})
	url := fmt.Sprintf("%s/bots/%s/stats", c.base, c.botID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("post stats: status=%d body=%s", resp.StatusCode, body)
	}
	return nil
}
