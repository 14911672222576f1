// Package integrity provides health checks for the infrastructure Lunar
// Assistant depends on.
//
// # Checks Provided
//
//   - Storage: the bucket exists and the rule configuration prefix is listable.
//   - Database: wallet_links and guild_configs carry the columns of their models.
//   - Sources: each holdings source answers a probe wallet within its timeout.
//
// A degraded holdings source is reported but does not fail the check; the
// reconciliation engine freezes affected roles instead.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the schema check.
//   - GET /integrity/sources : Probes holdings sources (supports ?wallet=).
package integrity
