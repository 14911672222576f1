package holdings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource is a scripted Source for aggregator tests.
type fakeSource struct {
	name     string
	coverage []string
	holdings map[string][]string
	err      error
	delay    time.Duration
}

func (f *fakeSource) Name() string       { return f.name }
func (f *fakeSource) Coverage() []string { return f.coverage }

func (f *fakeSource) ListHoldings(ctx context.Context, address string) (map[string][]string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.holdings, nil
}

func TestAggregate_MergesSources(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), time.Second,
		&fakeSource{name: "open", holdings: map[string][]string{"A": {"1", "2"}}},
		&fakeSource{name: "fixed", coverage: []string{"A", "B"}, holdings: map[string][]string{"A": {"3"}}},
	)

	snap, errs, err := agg.Aggregate(context.Background(), "terra1wallet")
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "terra1wallet", snap.Wallet)
	assert.Equal(t, []string{"1", "2", "3"}, snap.Lookup("A").IDs())

	b := snap.Lookup("B")
	assert.True(t, b.IsKnown(), "covered contract answered with nothing is known-empty")
	assert.Equal(t, 0, b.Count())
}

func TestAggregate_OpenSourceConfirmsOnlyReturnedContracts(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), time.Second,
		&fakeSource{name: "open", holdings: map[string][]string{"A": nil, "C": {"4"}}},
	)

	snap, errs, err := agg.Aggregate(context.Background(), "w")
	require.NoError(t, err)
	assert.Empty(t, errs)

	tests := []struct {
		contract  string
		wantKnown bool
		wantCount int
	}{
		{contract: "A", wantKnown: true, wantCount: 0},
		{contract: "C", wantKnown: true, wantCount: 1},
		{contract: "B", wantKnown: false},
	}
	for _, tt := range tests {
		t.Run(tt.contract, func(t *testing.T) {
			h := snap.Lookup(tt.contract)
			assert.Equal(t, tt.wantKnown, h.IsKnown())
			assert.Equal(t, tt.wantCount, h.Count())
		})
	}
}

func TestAggregate_FixedSourceFailureMarksCoverageUnknown(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), time.Second,
		&fakeSource{name: "open", holdings: map[string][]string{"A": {"1"}, "C": {"9"}}},
		&fakeSource{name: "fixed", coverage: []string{"A", "B"}, err: errors.New("status 500")},
	)

	snap, errs, err := agg.Aggregate(context.Background(), "w")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "fixed", errs[0].Source)

	assert.False(t, snap.Lookup("A").IsKnown(), "failed source's coverage overrides partial answers")
	assert.False(t, snap.Lookup("B").IsKnown())
	assert.True(t, snap.Lookup("C").IsKnown())
}

func TestAggregate_OpenSourceFailureMakesSnapshotOpaque(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), time.Second,
		&fakeSource{name: "open", err: errors.New("malformed payload")},
		&fakeSource{name: "fixed", coverage: []string{"A"}, holdings: map[string][]string{"A": {"1"}}},
	)

	snap, errs, err := agg.Aggregate(context.Background(), "w")
	require.NoError(t, err)
	assert.Len(t, errs, 1)
	assert.True(t, snap.Opaque())
	assert.False(t, snap.Lookup("A").IsKnown())
}

func TestAggregate_AllSourcesFail(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), time.Second,
		&fakeSource{name: "a", err: errors.New("boom")},
		&fakeSource{name: "b", coverage: []string{"X"}, err: errors.New("429")},
	)

	snap, errs, err := agg.Aggregate(context.Background(), "w")
	assert.ErrorIs(t, err, ErrAllSourcesUnavailable)
	assert.Nil(t, snap)
	assert.Len(t, errs, 2)

	var srcErr *SourceError
	require.ErrorAs(t, errs[0], &srcErr)
	assert.Contains(t, srcErr.Error(), "source a")
}

func TestAggregate_NoSources(t *testing.T) {
	_, _, err := NewAggregator(nil, 0).Aggregate(context.Background(), "w")
	assert.ErrorIs(t, err, ErrAllSourcesUnavailable)
}

func TestAggregate_SlowSourceTimesOutIndependently(t *testing.T) {
	agg := NewAggregator(zap.NewNop(), 50*time.Millisecond,
		&fakeSource{name: "slow", coverage: []string{"S"}, delay: time.Second},
		&fakeSource{name: "fast", holdings: map[string][]string{"F": {"1"}}},
	)

	start := time.Now()
	snap, errs, err := agg.Aggregate(context.Background(), "w")
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.DeadlineExceeded)
	assert.Less(t, elapsed, 500*time.Millisecond)
	assert.False(t, snap.Lookup("S").IsKnown())
	assert.True(t, snap.Lookup("F").IsKnown())
}
