package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LCD queries a fixed list of cw721 contracts through an LCD node.
type LCD struct {
	client      *client
	baseURL     string
	contracts   []string
	maxParallel int
	pageSize    int
}

// NewLCD creates the LCD source.
func NewLCD(cfg Config) *LCD {
	contracts := make([]string, 0, len(cfg.LCD.Contracts))
	for _, c := range cfg.LCD.Contracts {
		if c = strings.TrimSpace(c); c != "" {
			contracts = append(contracts, c)
		}
	}
	return &LCD{
		client:      newClient("lcd", cfg),
		baseURL:     strings.TrimRight(cfg.LCD.URL, "/"),
		contracts:   contracts,
		maxParallel: cfg.MaxParallel,
		pageSize:    cfg.PageSize,
	}
}

// Name returns "lcd".
func (l *LCD) Name() string { return "lcd" }

// Coverage returns the configured contracts.
func (l *LCD) Coverage() []string {
	return append([]string{}, l.contracts...)
}

// ListHoldings returns the wallet's tokens in every covered contract.
func (l *LCD) ListHoldings(ctx context.Context, address string) (map[string][]string, error) {
	var (
		mu     sync.Mutex
		result = make(map[string][]string, len(l.contracts))
	)

	g, gctx := errgroup.WithContext(ctx)
	if l.maxParallel > 0 {
		g.SetLimit(l.maxParallel)
	}
	for _, contract := range l.contracts {
		g.Go(func() error {
			storeURL := fmt.Sprintf("%s/terra/wasm/v1beta1/contracts/%s/store", l.baseURL, contract)
			ids, err := ownerTokens(gctx, l.client, storeURL, address, l.pageSize)
			if err != nil {
				return err
			}
			mu.Lock()
			result[contract] = ids
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
