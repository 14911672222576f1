package holdings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSourceTimeout bounds a single source call when none is configured.
const DefaultSourceTimeout = 10 * time.Second

// Aggregator merges the answers of several sources into one Snapshot.
type Aggregator struct {
	sources []Source
	timeout time.Duration
	logger  *zap.Logger
}

// NewAggregator creates an aggregator over the given sources.
// timeout applies to each source call independently.
func NewAggregator(logger *zap.Logger, timeout time.Duration, sources ...Source) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
}

// Sources returns the configured sources.
func (a *Aggregator) Sources() []Source {
	return a.sources
}

type sourceResult struct {
	holdings map[string][]string
	err      error
}

// Aggregate queries every source concurrently and merges their answers.
// Per-source failures are returned alongside the snapshot; the call fails
// with ErrAllSourcesUnavailable only when no source answered.
func (a *Aggregator) Aggregate(ctx context.Context, wallet string) (*Snapshot, []*SourceError, error) {
	if len(a.sources) == 0 {
		return nil, nil, fmt.Errorf("%w: no sources configured", ErrAllSourcesUnavailable)
	}

	results := make([]sourceResult, len(a.sources))

	var wg sync.WaitGroup
	wg.Add(len(a.sources))
	for i, src := range a.sources {
		go func(i int, src Source) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			start := time.Now()
			held, err := src.ListHoldings(callCtx, wallet)
			if err == nil && held == nil {
				held = map[string][]string{}
			}
			results[i] = sourceResult{holdings: held, err: err}

			if err != nil {
				a.logger.Warn("Holdings source failed",
					zap.String("source", src.Name()),
					zap.String("wallet", wallet),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err),
				)
				return
			}
			a.logger.Debug("Holdings source answered",
				zap.String("source", src.Name()),
				zap.String("wallet", wallet),
				zap.Int("contracts", len(held)),
				zap.Duration("elapsed", time.Since(start)),
			)
		}(i, src)
	}
	wg.Wait()

	snap, errs := merge(wallet, a.sources, results)
	if len(errs) == len(a.sources) {
		return nil, errs, ErrAllSourcesUnavailable
	}
	return snap, errs, nil
}

// merge folds source results into a snapshot. Successes are applied first so
// that failures can override the contracts they were responsible for.
func merge(wallet string, sources []Source, results []sourceResult) (*Snapshot, []*SourceError) {
	snap := NewSnapshot(wallet)
	var errs []*SourceError

	for i, res := range results {
		if res.err != nil {
			continue
		}
		// A fixed source confirms its whole coverage, an open source only what it returned.
		for _, contract := range sources[i].Coverage() {
			snap.AddKnown(contract)
		}
		for contract, ids := range res.holdings {
			snap.AddKnown(contract, ids...)
		}
	}

	for i, res := range results {
		if res.err == nil {
			continue
		}
		errs = append(errs, &SourceError{Source: sources[i].Name(), Err: res.err})

		coverage := sources[i].Coverage()
		if coverage == nil {
			snap.MarkOpaque()
			continue
		}
		for _, contract := range coverage {
			snap.MarkUnknown(contract)
		}
	}

	return snap, errs
}
