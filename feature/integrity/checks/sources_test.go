package checks

import (
	"context"
	"testing"
	"time"

	"lunar-assistant/core/holdings"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	name  string
	held  map[string][]string
	err   error
	delay time.Duration
	seen  string
}

func (s *stubSource) Name() string       { return s.name }
func (s *stubSource) Coverage() []string { return nil }

func (s *stubSource) ListHoldings(ctx context.Context, address string) (map[string][]string, error) {
	s.seen = address
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.held, s.err
}

func TestCheckSources(t *testing.T) {
	good := &stubSource{name: "knowhere", held: map[string][]string{"terra1a": {"1"}, "terra1b": nil}}
	bad := &stubSource{name: "lcd", err: assert.AnError}
	slow := &stubSource{name: "indexer", delay: time.Second}

	report := CheckSources(context.Background(), []holdings.Source{good, bad, slow}, "", 50*time.Millisecond)

	assert.Equal(t, DefaultProbeWallet, report.Wallet)
	assert.Equal(t, DefaultProbeWallet, good.seen)
	assert.Equal(t, 1, report.Available)
	assert.Len(t, report.Sources, 3)

	assert.Equal(t, "knowhere", report.Sources[0].Name)
	assert.Equal(t, "ok", report.Sources[0].Status)
	assert.Equal(t, 2, report.Sources[0].Contracts)

	assert.Equal(t, "error", report.Sources[1].Status)
	assert.NotEmpty(t, report.Sources[1].Error)

	assert.Equal(t, "indexer", report.Sources[2].Name)
	assert.Equal(t, "error", report.Sources[2].Status)
}

func TestCheckSources_None(t *testing.T) {
	report := CheckSources(context.Background(), nil, "terra1probe", time.Second)
	assert.Equal(t, "terra1probe", report.Wallet)
	assert.Zero(t, report.Available)
	assert.Empty(t, report.Sources)
}
