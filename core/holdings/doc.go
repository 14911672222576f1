// Package holdings aggregates a wallet's token holdings from several
// independently unreliable indexing sources.
//
// # Tri-state holdings
//
// Every contract in a Snapshot is either Known (a possibly empty set of
// owned token ids) or Unknown. A source that failed to answer never turns
// into "owns nothing": its coverage becomes Unknown so that downstream rule
// evaluation can refuse to revoke on missing data.
//
// # Sources
//
// A Source either declares a fixed coverage (the contracts it answers for)
// or is open (it discovers contracts itself). When a fixed-coverage source
// fails, its declared contracts become Unknown. When an open source fails,
// the whole snapshot becomes opaque and every lookup is Unknown. A contract
// that no source reported is Known and empty only if an open source answered.
//
// # Aggregator
//
// Aggregate queries every source concurrently, each under its own timeout,
// and merges the answers. It fails only when every source failed, with
// ErrAllSourcesUnavailable; otherwise per-source failures are returned as
// SourceErrors next to the snapshot.
package holdings
