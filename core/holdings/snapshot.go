package holdings

import "sort"

// Snapshot is a point-in-time record of a wallet's holdings per contract.
// It is built fresh for every reconciliation and never persisted.
type Snapshot struct {
	// Wallet is the address the snapshot was built for.
	Wallet string

	holdings map[string]Holding

	// opaque is set when an open source failed: nothing can be confirmed.
	opaque bool
}

// NewSnapshot creates an empty snapshot. Every contract reads Unknown.
func NewSnapshot(wallet string) *Snapshot {
	return &Snapshot{
		Wallet:   wallet,
		holdings: make(map[string]Holding),
	}
}

// FromMap builds a snapshot where every listed contract is Known with the
// given ids. Contracts not listed stay Unknown.
func FromMap(wallet string, owned map[string][]string) *Snapshot {
	s := NewSnapshot(wallet)
	for contract, ids := range owned {
		s.AddKnown(contract, ids...)
	}
	return s
}

// AddKnown records confirmed ids for a contract, merging with ids already
// recorded. It does not override an Unknown contract.
func (s *Snapshot) AddKnown(contract string, ids ...string) {
	key := NormalizeContract(contract)
	existing, ok := s.holdings[key]
	if !ok {
		s.holdings[key] = Known(ids...)
		return
	}
	if !existing.IsKnown() {
		return
	}
	s.holdings[key] = existing.union(Known(ids...))
}

// MarkUnknown marks a contract Unknown, discarding any confirmed ids.
func (s *Snapshot) MarkUnknown(contract string) {
	s.holdings[NormalizeContract(contract)] = Unknown()
}

// MarkOpaque makes every lookup Unknown.
func (s *Snapshot) MarkOpaque() { s.opaque = true }

// Opaque reports whether the snapshot cannot confirm anything.
func (s *Snapshot) Opaque() bool { return s.opaque }

// Lookup returns the holding for a contract. A contract no source answered
// for is Unknown, never an empty Known.
func (s *Snapshot) Lookup(contract string) Holding {
	if s.opaque {
		return Unknown()
	}
	if h, ok := s.holdings[NormalizeContract(contract)]; ok {
		return h
	}
	return Unknown()
}

// Contracts returns the contracts with an explicit entry, sorted.
func (s *Snapshot) Contracts() []string {
	keys := make([]string, 0, len(s.holdings))
	for k := range s.holdings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KnownCount returns how many contracts have confirmed holdings.
func (s *Snapshot) KnownCount() int {
	n := 0
	for _, h := range s.holdings {
		if h.IsKnown() {
			n++
		}
	}
	return n
}
