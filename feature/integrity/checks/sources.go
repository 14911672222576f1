package checks

import (
	"context"
	"time"

	"lunar-assistant/core/holdings"

	"golang.org/x/sync/errgroup"
)

// DefaultProbeWallet is queried when no probe wallet is given.
const DefaultProbeWallet = "terra1dcegyrekltswvyy0xy69ydgxn9x8x32zdtapd8"

// SourceReport is the probe result of one holdings source.
type SourceReport struct {
	Name      string `json:"name"`
	Status    string `json:"status"` // "ok", "error"
	Contracts int    `json:"contracts"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// SourcesReport lists the probe result of every configured source.
type SourcesReport struct {
	Wallet    string         `json:"wallet"`
	Available int            `json:"available"`
	Sources   []SourceReport `json:"sources"`
}

// CheckSources queries every source for the probe wallet concurrently.
// A failing source is reported, never returned as an error.
func CheckSources(ctx context.Context, srcs []holdings.Source, wallet string, timeout time.Duration) *SourcesReport {
	if wallet == "" {
		wallet = DefaultProbeWallet
	}
	if timeout <= 0 {
		timeout = holdings.DefaultSourceTimeout
	}

	report := &SourcesReport{Wallet: wallet, Sources: make([]SourceReport, len(srcs))}

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			held, err := src.ListHoldings(callCtx, wallet)
			res := SourceReport{
				Name:      src.Name(),
				Status:    "ok",
				Contracts: len(held),
				ElapsedMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				res.Status = "error"
				res.Contracts = 0
				res.Error = err.Error()
			}
			report.Sources[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Sources {
		if res.Status == "ok" {
			report.Available++
		}
	}
	return report
}
