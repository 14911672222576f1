package holdings

import (
	"sort"
	"strings"
)

// State tells whether a contract's holdings could be confirmed.
type State int

const (
	// StateUnknown means no answering source could confirm the holdings.
	StateUnknown State = iota
	// StateKnown means the holdings were confirmed (possibly empty).
	StateKnown
)

// String returns the state name.
func (s State) String() string {
	if s == StateKnown {
		return "known"
	}
	return "unknown"
}

// Holding is the tagged variant Known(ids) | Unknown for one contract.
// The zero value is Unknown.
type Holding struct {
	state State
	ids   map[string]struct{}
}

// Known returns a confirmed holding owning the given token ids.
func Known(ids ...string) Holding {
	h := Holding{state: StateKnown, ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		h.ids[id] = struct{}{}
	}
	return h
}

// Unknown returns a holding that could not be confirmed.
func Unknown() Holding {
	return Holding{state: StateUnknown}
}

// State returns the holding's state.
func (h Holding) State() State { return h.state }

// IsKnown reports whether the holding was confirmed.
func (h Holding) IsKnown() bool { return h.state == StateKnown }

// Count returns the number of owned token ids. It is zero for Unknown,
// callers must check IsKnown first.
func (h Holding) Count() int { return len(h.ids) }

// Has reports whether the token id is owned.
func (h Holding) Has(id string) bool {
	_, ok := h.ids[id]
	return ok
}

// IDs returns the owned token ids in sorted order.
func (h Holding) IDs() []string {
	ids := make([]string, 0, len(h.ids))
	for id := range h.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// union merges other's ids into a copy of h. Both must be Known.
func (h Holding) union(other Holding) Holding {
	merged := Known(h.IDs()...)
	for id := range other.ids {
		merged.ids[id] = struct{}{}
	}
	return merged
}

// NormalizeContract canonicalises a contract address for map keys.
func NormalizeContract(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
