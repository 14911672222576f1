package rules

import (
	"encoding/json"
	"math"
	"strings"

	"lunar-assistant/core/utils"
)

// RuleInput is the raw input of the add-rule command.
type RuleInput struct {
	// NFTAddress is the contract checked for ownership.
	NFTAddress string `json:"nftAddress"`
	// RoleName is the role granted to users meeting the rule.
	RoleName string `json:"roleName"`
	// Quantity is the number of matching tokens required; nil means 1.
	Quantity *float64 `json:"quantity,omitempty"`
	// TokenIDs is a JSON array of token ids the rule is restricted to,
	// as typed by the admin, e.g. `["1","2"]` or `[1,2]`.
	TokenIDs string `json:"tokenIds,omitempty"`
}

// Parse validates the input and builds a rule.
// Errors are *ParseError.
func (in RuleInput) Parse() (GuildRule, error) {
	address := strings.TrimSpace(in.NFTAddress)
	role := strings.TrimSpace(in.RoleName)
	if address == "" {
		return GuildRule{}, &ParseError{Field: "nft address", Reason: "missing"}
	}
	if role == "" {
		return GuildRule{}, &ParseError{Field: "role", Reason: "missing"}
	}

	quantity := DefaultQuantity
	if in.Quantity != nil {
		q := *in.Quantity
		if q < 0 || q != math.Trunc(q) || q > math.MaxInt32 {
			return GuildRule{}, &ParseError{Field: "quantity", Reason: "must be a whole number >= 0"}
		}
		quantity = int(q)
	}

	tokenIDs, err := parseTokenIDs(in.TokenIDs)
	if err != nil {
		return GuildRule{}, err
	}

	return GuildRule{
		Version: RuleVersion,
		NFT: map[string]NFTRequirement{
			address: {TokenIDs: tokenIDs, Quantity: quantity},
		},
		Token:       map[string]json.RawMessage{},
		NativeToken: map[string]json.RawMessage{},
		RoleName:    role,
	}, nil
}

func parseTokenIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var values []any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, &ParseError{Field: "token ids", Reason: "expected a JSON array such as [\"1\",\"2\"]"}
	}
	if len(values) == 0 {
		return nil, &ParseError{Field: "token ids", Reason: "list is empty"}
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		switch v.(type) {
		case string, json.Number:
		default:
			return nil, &ParseError{Field: "token ids", Reason: "ids must be strings or numbers"}
		}
		id := strings.TrimSpace(utils.ToString(v))
		if id == "" {
			return nil, &ParseError{Field: "token ids", Reason: "empty id"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
