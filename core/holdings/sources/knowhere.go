package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Knowhere discovers the marketplace's collections and queries each one for
// the wallet's tokens. It is an open source: it has no fixed coverage.
type Knowhere struct {
	client      *client
	baseURL     string
	fcdURL      string
	maxParallel int
	pageSize    int
	collections *collectionCache
}

type collectionsResponse struct {
	Nodes *[]struct {
		NFTContract string `json:"nftContract"`
	} `json:"nodes"`
}

// NewKnowhere creates the Knowhere source.
func NewKnowhere(cfg Config) *Knowhere {
	return &Knowhere{
		client:      newClient("knowhere", cfg),
		baseURL:     strings.TrimRight(cfg.Knowhere.URL, "/"),
		fcdURL:      strings.TrimRight(cfg.Knowhere.FCDURL, "/"),
		maxParallel: cfg.MaxParallel,
		pageSize:    cfg.PageSize,
		collections: newCollectionCache(time.Duration(cfg.Knowhere.CollectionsTTLSeconds) * time.Second),
	}
}

// Name returns "knowhere".
func (k *Knowhere) Name() string { return "knowhere" }

// Coverage returns nil: the collection list is discovered per call. Every
// listed collection is returned, empty or not, so it is confirmed.
func (k *Knowhere) Coverage() []string { return nil }

// ListHoldings returns the wallet's tokens in every Knowhere collection.
// A failure on any single collection fails the whole source.
func (k *Knowhere) ListHoldings(ctx context.Context, address string) (map[string][]string, error) {
	contracts, err := k.collections.get(ctx, k.fetchCollections)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = make(map[string][]string, len(contracts))
	)

	g, gctx := errgroup.WithContext(ctx)
	if k.maxParallel > 0 {
		g.SetLimit(k.maxParallel)
	}
	for _, contract := range contracts {
		g.Go(func() error {
			storeURL := fmt.Sprintf("%s/wasm/contracts/%s/store", k.fcdURL, contract)
			ids, err := ownerTokens(gctx, k.client, storeURL, address, k.pageSize)
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
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			// A listed contract is gone; the next call refetches the list.
			k.collections.invalidate()
		}
		return nil, err
	}
	return result, nil
}

func (k *Knowhere) fetchCollections(ctx context.Context) ([]string, error) {
	var resp collectionsResponse
	if err := k.client.getJSON(ctx, k.baseURL+"/collections", &resp); err != nil {
		return nil, err
	}
	if resp.Nodes == nil {
		return nil, fmt.Errorf("knowhere: malformed payload: missing nodes")
	}

	contracts := make([]string, 0, len(*resp.Nodes))
	for _, n := range *resp.Nodes {
		if n.NFTContract != "" {
			contracts = append(contracts, n.NFTContract)
		}
	}
	return contracts, nil
}
