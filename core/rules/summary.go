package rules

import (
	"encoding/json"
	"fmt"
)

// RuleSummary is the listing view of one stored rule.
type RuleSummary struct {
	Index        int                  `json:"index"`
	RoleName     string               `json:"roleName"`
	Requirements []RequirementSummary `json:"requirements"`
}

// RequirementSummary is the listing view of one nft requirement.
type RequirementSummary struct {
	NFTAddress string   `json:"nftAddress"`
	TokenIDs   []string `json:"tokenIds,omitempty"`
	Quantity   int      `json:"quantity"`
}

// Summaries lists the rules with their positional index.
func (c *GuildConfig) Summaries() []RuleSummary {
	out := make([]RuleSummary, 0, len(c.Rules))
	for i, r := range c.Rules {
		s := RuleSummary{Index: i, RoleName: r.RoleName}
		for _, contract := range r.Contracts() {
			req := r.NFT[contract]
			s.Requirements = append(s.Requirements, RequirementSummary{
				NFTAddress: contract,
				TokenIDs:   req.TokenIDs,
				Quantity:   req.Quantity,
			})
		}
		out = append(out, s)
	}
	return out
}

// String renders the summary as shown by the view-rules command.
func (s RuleSummary) String() string {
	var body any
	if len(s.Requirements) == 1 {
		req := s.Requirements[0]
		body = struct {
			NFTAddress string   `json:"nftAddress"`
			TokenIDs   []string `json:"tokenIds,omitempty"`
			Quantity   int      `json:"quantity"`
			RoleName   string   `json:"roleName"`
		}{req.NFTAddress, req.TokenIDs, req.Quantity, s.RoleName}
	} else {
		body = struct {
			NFT      []RequirementSummary `json:"nft"`
			RoleName string               `json:"roleName"`
		}{s.Requirements, s.RoleName}
	}

	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("Rule %d: %s", s.Index, s.RoleName)
	}
	return fmt.Sprintf("Rule %d: %s", s.Index, b)
}
