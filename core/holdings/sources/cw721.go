package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"lunar-assistant/core/utils"
)

// maxPages stops a runaway pagination loop.
const maxPages = 1000

var errMissingResult = errors.New("response has no query result")

// tokensQuery is the cw721 "tokens" query message.
type tokensQuery struct {
	Tokens tokensQueryBody `json:"tokens"`
}

type tokensQueryBody struct {
	Owner      string `json:"owner"`
	StartAfter string `json:"start_after,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// storeResponse covers both the FCD ("result") and LCD ("query_result")
// contract store envelopes.
type storeResponse struct {
	Result      *tokensResult `json:"result"`
	QueryResult *tokensResult `json:"query_result"`
}

type tokensResult struct {
	Tokens []any `json:"tokens"`
}

func (r storeResponse) tokens() ([]string, error) {
	res := r.Result
	if res == nil {
		res = r.QueryResult
	}
	if res == nil || res.Tokens == nil {
		return nil, errMissingResult
	}
	ids := make([]string, 0, len(res.Tokens))
	for _, t := range res.Tokens {
		ids = append(ids, utils.ToString(t))
	}
	return ids, nil
}

// ownerTokens pages through a cw721 contract's "tokens" query for owner.
// storeURL is the contract store endpoint without query string.
func ownerTokens(ctx context.Context, c *client, storeURL, owner string, pageSize int) ([]string, error) {
	if pageSize <= 0 {
		pageSize = 30
	}

	var all []string
	startAfter := ""
	for page := 0; page < maxPages; page++ {
		msg, err := json.Marshal(tokensQuery{Tokens: tokensQueryBody{
			Owner:      owner,
			StartAfter: startAfter,
			Limit:      pageSize,
		}})
		if err != nil {
			return nil, err
		}

		var resp storeResponse
		if err := c.getJSON(ctx, storeURL+"?query_msg="+url.QueryEscape(string(msg)), &resp); err != nil {
			return nil, err
		}
		ids, err := resp.tokens()
		if err != nil {
			return nil, fmt.Errorf("%s: malformed payload from %s: %w", c.source, storeURL, err)
		}

		all = append(all, ids...)
		if len(ids) < pageSize {
			return all, nil
		}
		startAfter = ids[len(ids)-1]
	}
	return nil, fmt.Errorf("%s: pagination for %s exceeded %d pages", c.source, storeURL, maxPages)
}
