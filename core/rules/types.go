package rules

import (
	"encoding/json"
	"sort"
)

// RuleVersion is the schema version written by this service.
const RuleVersion = "1.0"

// DefaultQuantity is the required quantity when a rule does not set one.
const DefaultQuantity = 1

// NFTRequirement is the ownership condition for one contract.
type NFTRequirement struct {
	// TokenIDs restricts matching to these ids. Empty means any id counts.
	TokenIDs []string `json:"tokenIds,omitempty"`
	// Quantity is the minimum number of matching tokens (>= 0).
	Quantity int `json:"quantity"`
}

// UnmarshalJSON applies DefaultQuantity when quantity is absent and rejects
// a negative quantity.
func (r *NFTRequirement) UnmarshalJSON(data []byte) error {
	type plain NFTRequirement
	aux := struct {
		*plain
		Quantity *int `json:"quantity"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Quantity = DefaultQuantity
	if aux.Quantity != nil {
		if *aux.Quantity < 0 {
			return &ParseError{Field: "quantity", Reason: "must be a whole number >= 0"}
		}
		r.Quantity = *aux.Quantity
	}
	return nil
}

// Restricted reports whether only listed token ids count.
func (r NFTRequirement) Restricted() bool {
	return len(r.TokenIDs) > 0
}

// GuildRule is one ownership condition that grants RoleName.
type GuildRule struct {
	Version string                    `json:"version"`
	NFT     map[string]NFTRequirement `json:"nft"`
	// Token and NativeToken hold fungible and native-coin requirements.
	// They are kept verbatim; this engine cannot confirm them.
	Token       map[string]json.RawMessage `json:"token"`
	NativeToken map[string]json.RawMessage `json:"nativeToken"`
	RoleName    string                     `json:"roleName"`
}

// MarshalJSON writes empty objects rather than null for unset maps.
func (r GuildRule) MarshalJSON() ([]byte, error) {
	type plain GuildRule
	p := plain(r)
	if p.NFT == nil {
		p.NFT = map[string]NFTRequirement{}
	}
	if p.Token == nil {
		p.Token = map[string]json.RawMessage{}
	}
	if p.NativeToken == nil {
		p.NativeToken = map[string]json.RawMessage{}
	}
	return json.Marshal(p)
}

// Contracts returns the rule's nft contracts in sorted order.
func (r GuildRule) Contracts() []string {
	keys := make([]string, 0, len(r.NFT))
	for k := range r.NFT {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GuildConfig is the ordered rule list of one community.
type GuildConfig struct {
	Rules []GuildRule `json:"rules"`
}

// Add appends a rule and returns its index.
func (c *GuildConfig) Add(rule GuildRule) int {
	c.Rules = append(c.Rules, rule)
	return len(c.Rules) - 1
}

// Remove deletes the rule at index, keeping the relative order of the rest.
func (c *GuildConfig) Remove(index int) (GuildRule, error) {
	if index < 0 || index >= len(c.Rules) {
		return GuildRule{}, &IndexError{Index: index, Len: len(c.Rules)}
	}
	removed := c.Rules[index]
	c.Rules = append(c.Rules[:index:index], c.Rules[index+1:]...)
	return removed, nil
}

// Roles returns the distinct target roles in rule order.
func (c *GuildConfig) Roles() []string {
	seen := make(map[string]struct{}, len(c.Rules))
	var roles []string
	for _, r := range c.Rules {
		if _, ok := seen[r.RoleName]; ok {
			continue
		}
		seen[r.RoleName] = struct{}{}
		roles = append(roles, r.RoleName)
	}
	return roles
}
