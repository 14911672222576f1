package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/holdings"
	"lunar-assistant/core/keylock"
	"lunar-assistant/core/platform"
	"lunar-assistant/core/rules"

	"go.uber.org/zap"
)

// WalletLookup resolves the wallet linked to a user.
type WalletLookup interface {
	GetLinkedWallet(ctx context.Context, userID string) (string, bool, error)
}

// HoldingsReader builds a holdings snapshot for a wallet.
type HoldingsReader interface {
	Aggregate(ctx context.Context, wallet string) (*holdings.Snapshot, []*holdings.SourceError, error)
}

// Engine reconciles a user's roles with their holdings across communities.
type Engine struct {
	wallets  WalletLookup
	holdings HoldingsReader
	store    guildconfig.Store
	platform platform.Platform
	logger   *zap.Logger

	locks       *keylock.Locker
	lockTimeout time.Duration
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(cfg Config, wallets WalletLookup, reader HoldingsReader, store guildconfig.Store, p platform.Platform, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.LockTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Engine{
		wallets:     wallets,
		holdings:    reader,
		store:       store,
		platform:    p,
		logger:      logger,
		locks:       keylock.New(),
		lockTimeout: timeout,
	}
}

// Reconcile brings the user's managed roles in line with their holdings in
// every community they share with the bot. At most one reconciliation per
// user runs at a time; a second call waits for the first.
//
// Holdings are read once. Communities are processed one after another and a
// failure in one is recorded on its outcome without stopping the rest.
func (e *Engine) Reconcile(ctx context.Context, userID string, opts Options) (*Report, error) {
	lockCtx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	unlock, err := e.locks.Lock(lockCtx, userID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("wait for reconciliation of user %s: %w", userID, err)
	}
	defer unlock()

	l := e.logger.With(zap.String("user", userID))

	wallet, ok, err := e.wallets.GetLinkedWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWalletNotLinked
	}
	l = l.With(zap.String("wallet", wallet))

	snap, sourceErrs, err := e.holdings.Aggregate(ctx, wallet)
	if err != nil {
		l.Warn("Holdings unavailable, roles frozen", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrHoldingsUnavailable, err)
	}

	report := &Report{
		UserID: userID,
		Wallet: wallet,
		DryRun: opts.DryRun,
	}
	for _, se := range sourceErrs {
		report.SourceErrors = append(report.SourceErrors, se.Error())
	}

	guilds, err := e.platform.MemberGuilds(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}

	for _, g := range guilds {
		outcome, configured := e.reconcileGuild(ctx, l, g, userID, snap, opts)
		if !configured {
			continue
		}
		report.Guilds = append(report.Guilds, outcome)
	}
	report.ActiveRoles = activeRolesByName(report.Guilds)

	l.Info("Reconciliation finished",
		zap.Int("guilds", len(report.Guilds)),
		zap.Int("source_errors", len(sourceErrs)),
		zap.Bool("dry_run", opts.DryRun),
	)
	return report, nil
}

// reconcileGuild reconciles one community. configured is false when the
// community has no rules, in which case it is left out of the report.
func (e *Engine) reconcileGuild(ctx context.Context, l *zap.Logger, g platform.Guild, userID string, snap *holdings.Snapshot, opts Options) (outcome GuildOutcome, configured bool) {
	outcome = GuildOutcome{GuildID: g.ID, GuildName: g.Name, ActiveRoles: []string{}}
	l = l.With(zap.String("guild", g.ID))

	fail := func(msg string, err error) (GuildOutcome, bool) {
		l.Error(msg, zap.Error(err))
		outcome.Error = fmt.Sprintf("%s: %v", msg, err)
		return outcome, true
	}

	cfg, ok, err := e.store.Get(ctx, g.ID)
	if err != nil {
		return fail("load rules", err)
	}
	if !ok || len(cfg.Rules) == 0 {
		return outcome, false
	}

	verdicts := rules.EvaluateAll(snap, cfg.Rules)

	current, err := e.platform.MemberRoles(ctx, g.ID, userID)
	if errors.Is(err, platform.ErrNotMember) {
		// Left between listing and now.
		return outcome, false
	}
	if err != nil {
		return fail("read member roles", err)
	}
	hierarchy, err := e.platform.Hierarchy(ctx, g.ID)
	if err != nil {
		return fail("read role hierarchy", err)
	}

	plan := Diff(g, cfg.Rules, verdicts, current, hierarchy)
	outcome.Plan = plan

	for _, r := range plan.Rejected {
		l.Warn("Role change rejected", zap.String("role", r.RoleName), zap.String("reason", r.Reason))
	}
	if len(plan.Frozen) > 0 {
		l.Info("Roles frozen", zap.Strings("roles", plan.Frozen))
	}

	if opts.DryRun {
		outcome.ActiveRoles = activeRoles(plan, nil)
		return outcome, true
	}

	succeeded, failures := ApplyPlan(ctx, e.platform, userID, plan)
	outcome.Applied = len(succeeded)
	outcome.Failures = failures
	outcome.ActiveRoles = activeRoles(plan, succeeded)
	for _, f := range failures {
		l.Error("Role change failed",
			zap.String("type", string(f.Action.Type)),
			zap.String("role", f.Action.Role.Name),
			zap.String("error", f.Error))
	}
	return outcome, true
}

// activeRolesByName keys the active roles of successful outcomes by community
// name. Communities sharing a name are keyed "name (id)" so none is lost.
func activeRolesByName(outcomes []GuildOutcome) map[string][]string {
	seen := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		if o.Error == "" {
			seen[o.GuildName]++
		}
	}

	active := make(map[string][]string, len(seen))
	for _, o := range outcomes {
		if o.Error != "" {
			continue
		}
		key := o.GuildName
		if seen[key] > 1 {
			key = fmt.Sprintf("%s (%s)", o.GuildName, o.GuildID)
		}
		active[key] = o.ActiveRoles
	}
	return active
}
