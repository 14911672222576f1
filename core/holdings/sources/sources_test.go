package sources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		TimeoutSeconds:    2,
		RequestsPerSecond: 1000,
		MaxParallel:       4,
		PageSize:          2,
	}
}

// tokenPages serves a cw721 tokens query over ids, honouring start_after and limit.
func tokenPages(t *testing.T, w http.ResponseWriter, r *http.Request, envelope string, ids []string) {
	var msg tokensQuery
	if !assert.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("query_msg")), &msg)) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	start := 0
	if msg.Tokens.StartAfter != "" {
		for i, id := range ids {
			if id == msg.Tokens.StartAfter {
				start = i + 1
			}
		}
	}
	end := start + msg.Tokens.Limit
	if end > len(ids) {
		end = len(ids)
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		envelope: map[string]any{"tokens": ids[start:end]},
	})
}

func TestKnowhere_ListHoldings(t *testing.T) {
	var collectionCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/collections":
			atomic.AddInt32(&collectionCalls, 1)
			_, _ = w.Write([]byte(`{"nodes":[{"nftContract":"terra1punks"},{"nftContract":"terra1apes"}]}`))
		case r.URL.Path == "/wasm/contracts/terra1punks/store":
			tokenPages(t, w, r, "result", []string{"1", "2", "3"})
		case r.URL.Path == "/wasm/contracts/terra1apes/store":
			tokenPages(t, w, r, "result", []string{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Knowhere = KnowhereConfig{URL: srv.URL, FCDURL: srv.URL, CollectionsTTLSeconds: 60}
	k := NewKnowhere(cfg)

	assert.Nil(t, k.Coverage())

	held, err := k.ListHoldings(context.Background(), "terra1wallet")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, held["terra1punks"], "all pages are collected")
	assert.Empty(t, held["terra1apes"])
	assert.Contains(t, held, "terra1apes")

	_, err = k.ListHoldings(context.Background(), "terra1other")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&collectionCalls), "collection list is cached")
}

func TestKnowhere_ContractFailureFailsSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections" {
			_, _ = w.Write([]byte(`{"nodes":[{"nftContract":"terra1punks"}]}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Knowhere = KnowhereConfig{URL: srv.URL, FCDURL: srv.URL}
	held, err := NewKnowhere(cfg).ListHoldings(context.Background(), "terra1wallet")

	assert.Nil(t, held)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestKnowhere_MissingContractRefreshesCollections(t *testing.T) {
	var collectionCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections":
			if atomic.AddInt32(&collectionCalls, 1) == 1 {
				_, _ = w.Write([]byte(`{"nodes":[{"nftContract":"terra1gone"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"nodes":[{"nftContract":"terra1punks"}]}`))
		case "/wasm/contracts/terra1punks/store":
			tokenPages(t, w, r, "result", []string{"1"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Knowhere = KnowhereConfig{URL: srv.URL, FCDURL: srv.URL, CollectionsTTLSeconds: 60}
	k := NewKnowhere(cfg)

	tests := []struct {
		name      string
		wantCode  int
		wantHeld  map[string][]string
		wantCalls int32
	}{
		{name: "stale list fails the source", wantCode: http.StatusNotFound, wantCalls: 1},
		{name: "next call refetches the list", wantHeld: map[string][]string{"terra1punks": {"1"}}, wantCalls: 2},
		{name: "refreshed list is cached", wantHeld: map[string][]string{"terra1punks": {"1"}}, wantCalls: 2},
	}
	for _, tt := range tests {
		held, err := k.ListHoldings(context.Background(), "terra1wallet")
		if tt.wantCode != 0 {
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr, tt.name)
			assert.Equal(t, tt.wantCode, statusErr.StatusCode, tt.name)
		} else {
			require.NoError(t, err, tt.name)
			assert.Equal(t, tt.wantHeld, held, tt.name)
		}
		assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&collectionCalls), tt.name)
	}
}

func TestKnowhere_MalformedCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Knowhere = KnowhereConfig{URL: srv.URL, FCDURL: srv.URL}
	_, err := NewKnowhere(cfg).ListHoldings(context.Background(), "terra1wallet")
	assert.ErrorContains(t, err, "missing nodes")
}

func TestLCD_ListHoldings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/terra/wasm/v1beta1/contracts/terra1a/store":
			tokenPages(t, w, r, "query_result", []string{"10", "11"})
		case "/terra/wasm/v1beta1/contracts/terra1b/store":
			tokenPages(t, w, r, "query_result", []string{"5"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.LCD = LCDConfig{Enabled: true, URL: srv.URL, Contracts: []string{"terra1a", " terra1b ", ""}}
	lcd := NewLCD(cfg)

	assert.Equal(t, []string{"terra1a", "terra1b"}, lcd.Coverage())

	held, err := lcd.ListHoldings(context.Background(), "terra1wallet")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, held["terra1a"])
	assert.Equal(t, []string{"5"}, held["terra1b"])
}

func TestLCD_MissingResultIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"height":"1"}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.LCD = LCDConfig{URL: srv.URL, Contracts: []string{"terra1a"}}
	_, err := NewLCD(cfg).ListHoldings(context.Background(), "terra1wallet")
	assert.ErrorIs(t, err, errMissingResult)
}

func TestIndexer_ListHoldings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/0xWallet/nfts", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`{"holdings":{"0xABC":[1,2],"0xDEF":["a"]}}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Indexer = IndexerConfig{URL: srv.URL, APIKey: "secret"}
	held, err := NewIndexer(cfg).ListHoldings(context.Background(), "0xWallet")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, held["0xABC"], "numeric ids are normalised to strings")
	assert.Equal(t, []string{"a"}, held["0xDEF"])
}

func TestIndexer_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Indexer = IndexerConfig{URL: srv.URL}
	_, err := NewIndexer(cfg).ListHoldings(context.Background(), "w")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, 3*time.Second, statusErr.RetryAfter)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestIndexer_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Indexer = IndexerConfig{URL: srv.URL}
	held, err := NewIndexer(cfg).ListHoldings(context.Background(), "w")
	assert.Nil(t, held)
	assert.ErrorContains(t, err, "malformed payload")
}

func TestIndexer_TimeoutIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Indexer = IndexerConfig{URL: srv.URL}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewIndexer(cfg).ListHoldings(ctx, "w")
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "deadline"))
}

func TestBuild(t *testing.T) {
	cfg := testConfig()
	cfg.Knowhere.Enabled = true
	cfg.LCD = LCDConfig{Enabled: true}
	cfg.Indexer = IndexerConfig{Enabled: true, URL: "http://indexer"}

	built := Build(cfg, zap.NewNop())
	require.Len(t, built, 2, "LCD without contracts is skipped")
	assert.Equal(t, "knowhere", built[0].Name())
	assert.Equal(t, "indexer", built[1].Name())
}
