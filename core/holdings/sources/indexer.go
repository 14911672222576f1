package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lunar-assistant/core/utils"
)

// Indexer reads every contract a wallet holds from one REST endpoint:
//
//	GET {url}/wallets/{address}/nfts -> {"holdings": {"<contract>": ["<id>", ...]}}
type Indexer struct {
	client  *client
	baseURL string
}

type indexerResponse struct {
	Holdings *map[string][]any `json:"holdings"`
}

// NewIndexer creates the indexer source.
func NewIndexer(cfg Config) *Indexer {
	c := newClient("indexer", cfg)
	if cfg.Indexer.APIKey != "" {
		c.headers["X-API-Key"] = cfg.Indexer.APIKey
	}
	return &Indexer{
		client:  c,
		baseURL: strings.TrimRight(cfg.Indexer.URL, "/"),
	}
}

// Name returns "indexer".
func (i *Indexer) Name() string { return "indexer" }

// Coverage returns nil. The indexer only lists contracts the wallet holds,
// so a contract it omits stays unconfirmed.
func (i *Indexer) Coverage() []string { return nil }

// ListHoldings returns the wallet's holdings as reported by the indexer.
func (i *Indexer) ListHoldings(ctx context.Context, address string) (map[string][]string, error) {
	var resp indexerResponse
	endpoint := fmt.Sprintf("%s/wallets/%s/nfts", i.baseURL, url.PathEscape(address))
	if err := i.client.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Holdings == nil {
		return nil, fmt.Errorf("indexer: malformed payload: missing holdings")
	}

	result := make(map[string][]string, len(*resp.Holdings))
	for contract, raw := range *resp.Holdings {
		ids := make([]string, 0, len(raw))
		for _, id := range raw {
			ids = append(ids, utils.ToString(id))
		}
		result[contract] = ids
	}
	return result, nil
}
