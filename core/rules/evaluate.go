package rules

import "lunar-assistant/core/holdings"

// Verdict is the outcome of evaluating one rule.
type Verdict int

const (
	// Unsatisfied means at least one requirement is confirmed unmet.
	Unsatisfied Verdict = iota
	// Satisfied means every requirement is confirmed met.
	Satisfied
	// Indeterminate means nothing is confirmed unmet but something could
	// not be confirmed.
	Indeterminate
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Satisfied:
		return "satisfied"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unsatisfied"
	}
}

// Evaluate decides whether the snapshot satisfies the rule.
// Confirmed-unsatisfied dominates indeterminate, which dominates satisfied.
func Evaluate(snap *holdings.Snapshot, rule GuildRule) Verdict {
	if rule.Version != RuleVersion || len(rule.Token) > 0 || len(rule.NativeToken) > 0 {
		return Indeterminate
	}
	if len(rule.NFT) == 0 {
		return Unsatisfied
	}

	for _, req := range rule.NFT {
		if req.Quantity < 0 {
			return Indeterminate
		}
	}

	verdict := Satisfied
	for contract, req := range rule.NFT {
		switch evaluateRequirement(snap.Lookup(contract), req) {
		case Unsatisfied:
			return Unsatisfied
		case Indeterminate:
			verdict = Indeterminate
		}
	}
	return verdict
}

// EvaluateAll evaluates each rule, returning verdicts in rule order.
func EvaluateAll(snap *holdings.Snapshot, rules []GuildRule) []Verdict {
	verdicts := make([]Verdict, len(rules))
	for i, r := range rules {
		verdicts[i] = Evaluate(snap, r)
	}
	return verdicts
}

func evaluateRequirement(h holdings.Holding, req NFTRequirement) Verdict {
	if !h.IsKnown() {
		return Indeterminate
	}
	if MatchingCount(h, req) >= req.Quantity {
		return Satisfied
	}
	return Unsatisfied
}

// MatchingCount returns how many owned tokens count towards req: all owned
// ids, or only those in the restriction set.
func MatchingCount(h holdings.Holding, req NFTRequirement) int {
	if !req.Restricted() {
		return h.Count()
	}
	seen := make(map[string]struct{}, len(req.TokenIDs))
	n := 0
	for _, id := range req.TokenIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if h.Has(id) {
			n++
		}
	}
	return n
}
