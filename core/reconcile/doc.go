// Package reconcile brings a user's community roles in line with the
// tokens their linked wallet holds.
//
// # Architecture
//
// A reconciliation runs in three steps:
//
// 1. Holdings: the wallet's holdings are read once through a
// HoldingsReader (the holdings.Aggregator in production). If no source
// answers, nothing is applied and ErrHoldingsUnavailable is returned.
//
// 2. Plan: for each community with rules, every rule is evaluated and Diff
// compares the desired roles with the roles the platform reports right now.
// Only roles targeted by some rule are managed. A grant the bot's role
// hierarchy does not allow becomes a Rejection. A held role whose granting
// rules are merely indeterminate is frozen, never revoked.
//
// 3. Apply: ApplyPlan attempts every action and records failures. The
// outcome's active roles reflect only successful actions.
//
// # Concurrency
//
// Reconciliations of one user are serialised with a keyed lock held from
// the wallet lookup until the last community is applied. Different users
// run in parallel. Communities of one user are processed sequentially.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(cfg.Reconcile, wallets, aggregator, store, discordClient, logger)
//
//	report, err := engine.Reconcile(ctx, userID, reconcile.Options{})
//	if errors.Is(err, reconcile.ErrWalletNotLinked) {
//	    // ask the user to link a wallet
//	}
package reconcile
