package holdings

import (
	"context"
	"errors"
	"fmt"
)

// ErrAllSourcesUnavailable is returned when no source could answer.
var ErrAllSourcesUnavailable = errors.New("all holdings sources unavailable")

// Source is one external token-indexing service.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Coverage returns the contracts this source answers for.
	// A nil slice means the source is open and discovers contracts itself;
	// only the contracts it returns are then confirmed.
	Coverage() []string

	// ListHoldings returns contract address -> owned token ids for the wallet.
	// A queried contract the wallet owns nothing of is returned with no ids.
	// Any failure (timeout, non-2xx, rate limit, malformed payload) must be
	// returned as an error, never as an empty result.
	ListHoldings(ctx context.Context, address string) (map[string][]string, error)
}

// SourceError records one source's failure during an aggregation.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
