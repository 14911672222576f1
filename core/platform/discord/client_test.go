package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lunar-assistant/core/platform"
	"lunar-assistant/core/rules"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{
		APIURL:            srv.URL,
		BotToken:          "token",
		BotRoleName:       "Lunar Assistant",
		RequestsPerSecond: 1000,
		MaxRetries:        2,
		TimeoutSeconds:    2,
	}, nil)
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func guildServer(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bot token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"id": "bot"})
	})
	mux.HandleFunc("GET /users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{
			{"id": "g1", "name": "Lunar"},
			{"id": "g2", "name": "Other"},
		})
	})
	mux.HandleFunc("GET /guilds/g1/roles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []apiRole{
			{ID: "g1", Name: "@everyone", Position: 0},
			{ID: "r-holder", Name: "Holder", Position: 2},
			{ID: "r-whale", Name: "Whale", Position: 3},
			{ID: "r-bot", Name: "Lunar Assistant", Position: 5},
			{ID: "r-admin", Name: "Admin", Position: 9},
		})
	})
	mux.HandleFunc("GET /guilds/g1/members/u1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apiMember{Roles: []string{"r-holder", "r-whale"}})
	})
	mux.HandleFunc("GET /guilds/g1/members/bot", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apiMember{Roles: []string{"r-bot"}})
	})
	mux.HandleFunc("GET /guilds/g2/members/u1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"code": codeUnknownMember, "message": "Unknown Member"})
	})
	return mux
}

func TestClient_MemberGuildsSkipsNonMembers(t *testing.T) {
	c := newTestClient(t, guildServer(t))

	guilds, err := c.MemberGuilds(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []platform.Guild{{ID: "g1", Name: "Lunar"}}, guilds)
}

func TestClient_MemberRoles(t *testing.T) {
	c := newTestClient(t, guildServer(t))

	roles, err := c.MemberRoles(context.Background(), "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Whale", "Holder"}, roles)

	_, err = c.MemberRoles(context.Background(), "g2", "u1")
	assert.ErrorIs(t, err, platform.ErrNotMember)
}

func TestClient_Hierarchy(t *testing.T) {
	c := newTestClient(t, guildServer(t))

	h, err := c.Hierarchy(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 5, h.BotPosition)

	_, err = h.Check("Holder")
	assert.NoError(t, err)
	_, err = h.Check("Admin")
	assert.ErrorIs(t, err, rules.ErrHierarchyViolation)
}

func TestClient_GrantAndRevoke(t *testing.T) {
	var puts, deletes int32
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /guilds/g1/members/u1/roles/r-holder", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&puts, 1)
		assert.NotEmpty(t, r.Header.Get("X-Audit-Log-Reason"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /guilds/g1/members/u1/roles/r-holder", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&deletes, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux)
	role := platform.Role{ID: "r-holder", Name: "Holder", Position: 2}

	require.NoError(t, c.GrantRole(context.Background(), "g1", "u1", role))
	require.NoError(t, c.RevokeRole(context.Background(), "g1", "u1", role))
	assert.Equal(t, int32(1), atomic.LoadInt32(&puts))
	assert.Equal(t, int32(1), atomic.LoadInt32(&deletes))
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0.01")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"message": "You are being rate limited.", "retry_after": 0.01})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.GrantRole(context.Background(), "g1", "u1", platform.Role{ID: "r"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_GivesUpOnServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.GrantRole(context.Background(), "g1", "u1", platform.Role{ID: "r", Name: "Holder"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "one try plus two retries")
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusForbidden, map[string]any{"code": 50013, "message": "Missing Permissions"})
	}))

	err := c.RevokeRole(context.Background(), "g1", "u1", platform.Role{ID: "r", Name: "Holder"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 50013, apiErr.Code)
	assert.Contains(t, err.Error(), "Missing Permissions")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, retryAfter("1.5"))
	assert.Equal(t, time.Second, retryAfter(""))
}
