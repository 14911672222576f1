package reconcile

import (
	"errors"

	"lunar-assistant/core/platform"
)

var (
	// ErrWalletNotLinked is returned when the user has no linked wallet.
	ErrWalletNotLinked = errors.New("wallet not linked")
	// ErrHoldingsUnavailable is returned when no holdings source answered.
	// Nothing is applied in that case.
	ErrHoldingsUnavailable = errors.New("holdings unavailable")
)

// ActionType represents the type of role mutation.
type ActionType string

const (
	// ActionGrantRole gives a role to the user.
	ActionGrantRole ActionType = "grant_role"
	// ActionRevokeRole takes a role from the user.
	ActionRevokeRole ActionType = "revoke_role"
)

// Action represents a planned role mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Role is the role resolved from the community's hierarchy.
	Role platform.Role `json:"role"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Rejection is a mutation the bot is not allowed to perform.
type Rejection struct {
	Type     ActionType `json:"type"`
	RoleName string     `json:"role_name"`
	// Reason is the corrective message shown to admins.
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Plan is the role diff for one user in one community.
type Plan struct {
	GuildID   string `json:"guild_id"`
	GuildName string `json:"guild_name"`

	// Managed lists the roles targeted by any rule, in rule order.
	Managed []string `json:"managed"`

	// Current lists the managed roles the user held when planning.
	Current []string `json:"current"`

	// Desired lists the roles of satisfied rules.
	Desired []string `json:"desired"`

	// Actions contains planned mutations.
	Actions []Action `json:"actions"`

	// Rejected contains mutations blocked by the role hierarchy.
	Rejected []Rejection `json:"rejected"`

	// Frozen lists held roles that are kept because a granting rule could
	// not be evaluated.
	Frozen []string `json:"frozen"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Grants    int `json:"grants"`
	Revokes   int `json:"revokes"`
	Rejected  int `json:"rejected"`
	Frozen    int `json:"frozen"`
	// Unchanged counts held managed roles that stay held.
	Unchanged int `json:"unchanged"`
}

// ActionFailure records a mutation the platform refused.
type ActionFailure struct {
	Action Action `json:"action"`
	Error  string `json:"error"`
}

// GuildOutcome is the result of reconciling one community.
type GuildOutcome struct {
	GuildID   string `json:"guild_id"`
	GuildName string `json:"guild_name"`

	// Plan is nil when the community failed before planning.
	Plan *Plan `json:"plan,omitempty"`

	// Applied counts the mutations that succeeded.
	Applied int `json:"applied"`

	Failures []ActionFailure `json:"failures,omitempty"`

	// Error is set when the community could not be reconciled at all.
	Error string `json:"error,omitempty"`

	// ActiveRoles lists the managed roles the user holds afterwards.
	ActiveRoles []string `json:"active_roles"`
}

// Report is the result of reconciling one user across communities.
type Report struct {
	UserID string `json:"user_id"`
	Wallet string `json:"wallet"`
	DryRun bool   `json:"dry_run"`

	// SourceErrors lists holdings sources that failed; their coverage was
	// treated as unknown.
	SourceErrors []string `json:"source_errors,omitempty"`

	Guilds []GuildOutcome `json:"guilds"`

	// ActiveRoles maps community name to the managed roles the user holds.
	// Communities sharing a name are keyed "name (id)".
	ActiveRoles map[string][]string `json:"active_roles"`
}

// Frozen reports whether any community kept roles it could not verify.
func (r *Report) Frozen() bool {
	for _, g := range r.Guilds {
		if g.Plan != nil && len(g.Plan.Frozen) > 0 {
			return true
		}
	}
	return false
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun plans without applying any mutation.
	DryRun bool
}

// Config holds configuration for the reconciliation engine.
type Config struct {
	// LockTimeoutSeconds bounds the wait for a user's in-flight reconciliation.
	LockTimeoutSeconds int `mapstructure:"lock_timeout_seconds" default:"60"`
}
