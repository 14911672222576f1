package roles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"lunar-assistant/core/holdings"
	"lunar-assistant/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEngine struct {
	report *reconcile.Report
	err    error
	opts   reconcile.Options
}

func (s *stubEngine) Reconcile(_ context.Context, _ string, opts reconcile.Options) (*reconcile.Report, error) {
	s.opts = opts
	return s.report, s.err
}

func TestGrantedMessage(t *testing.T) {
	assert.Equal(t, noRolesMessage, GrantedMessage(nil))
	assert.Equal(t, noRolesMessage, GrantedMessage(map[string][]string{"Lunar": {}}))
	assert.Equal(t,
		"You have been granted the following roles on the following servers:\nAlpha: Holder\nLunar: Holder, Whale",
		GrantedMessage(map[string][]string{"Lunar": {"Holder", "Whale"}, "Alpha": {"Holder"}, "Empty": nil}))
}

func call(t *testing.T, engine Reconciler, path string) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	f := NewFeature(engine, zap.NewNop())
	require.True(t, f.IsEnabled())
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleViewRoles(t *testing.T) {
	engine := &stubEngine{report: &reconcile.Report{ActiveRoles: map[string][]string{"Lunar": {"Holder"}}}}

	status, body := call(t, engine, "/users/u1/roles?private=true&dry_run=1")
	assert.Equal(t, 200, status)
	assert.Equal(t, "You have been granted the following roles on the following servers:\nLunar: Holder", body["message"])
	assert.Equal(t, true, body["private"])
	assert.True(t, engine.opts.DryRun)
}

func TestHandleViewRoles_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"wallet not linked", reconcile.ErrWalletNotLinked, 404, walletMissingMessage},
		{"holdings unavailable", fmt.Errorf("%w: %w", reconcile.ErrHoldingsUnavailable, holdings.ErrAllSourcesUnavailable), 503, unavailableMessage},
		{"unknown", errors.New("boom"), 500, "There was an unknown error while executing this command!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, &stubEngine{err: tt.err}, "/users/u1/roles")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, false, body["private"])
		})
	}
}
