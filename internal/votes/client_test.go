package votes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasVoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bots/bot123/check", r.URL.Path)
		assert.Equal(t, "user42", r.URL.Query().Get("userId"))
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"voted": 1}`))
	}))
	defer srv.Close()

	c := New("bot123", "secret")
	c.base = srv.URL

	voted, err := c.HasVoted(context.Background(), "user42")
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestHasVoted_NotVoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"voted": 0}`))
	}))
	defer srv.Close()

	c := New("bot123", "secret")
	c.base = srv.URL

	voted, err := c.HasVoted(context.Background(), "user42")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestHasVoted_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("bot123", "bad-token")
	c.base = srv.URL

	voted, err := c.HasVoted(context.Background(), "user42")
	assert.False(t, voted)
	var vErr *VoteCheckError
	assert.ErrorAs(t, err, &vErr)
}

func TestHasVoted_DisabledWithoutToken(t *testing.T) {
	c := New("bot123", "")
	voted, err := c.HasVoted(context.Background(), "user42")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestPostStats(t *testing.T) {
	var got map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bots/bot123/stats", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	c := New("bot123", "secret")
	c.base = srv.URL

	require.NoError(t, c.PostStats(context.Background(), 57))
	assert.Equal(t, 57, got["server_count"])
}

func TestPostStats_NoOpWithoutToken(t *testing.T) {
	c := New("bot123", "")
	assert.NoError(t, c.PostStats(context.Background(), 10))
}
