package reconcile

import (
	"context"
	"fmt"

	"lunar-assistant/core/platform"
	"lunar-assistant/core/rules"
)

// Diff computes the role mutations for one community. verdicts must be
// aligned with guildRules. Roles no rule targets are never touched.
//
// A held role is revoked only when every rule granting it is confirmed
// unsatisfied; if any of them is indeterminate the role is frozen.
func Diff(guild platform.Guild, guildRules []rules.GuildRule, verdicts []rules.Verdict, current []string, h *platform.Hierarchy) *Plan {
	plan := &Plan{GuildID: guild.ID, GuildName: guild.Name}

	var (
		managed       = make(map[string]struct{})
		desired       = make(map[string]struct{})
		indeterminate = make(map[string]struct{})
		held          = make(map[string]struct{}, len(current))
	)
	for _, name := range current {
		held[name] = struct{}{}
	}
	for i, r := range guildRules {
		if _, ok := managed[r.RoleName]; !ok {
			managed[r.RoleName] = struct{}{}
			plan.Managed = append(plan.Managed, r.RoleName)
		}
		switch verdicts[i] {
		case rules.Satisfied:
			desired[r.RoleName] = struct{}{}
		case rules.Indeterminate:
			indeterminate[r.RoleName] = struct{}{}
		}
	}

	for _, name := range plan.Managed {
		_, want := desired[name]
		_, has := held[name]
		if has {
			plan.Current = append(plan.Current, name)
		}
		if want {
			plan.Desired = append(plan.Desired, name)
		}

		switch {
		case want && !has:
			role, err := h.Check(name)
			if err != nil {
				plan.Rejected = append(plan.Rejected, Rejection{Type: ActionGrantRole, RoleName: name, Reason: err.Error(), Err: err})
				plan.Summary.Rejected++
				continue
			}
			plan.Actions = append(plan.Actions, Action{Type: ActionGrantRole, Role: role, Reason: "ownership rule satisfied"})
			plan.Summary.Grants++

		case !want && has:
			if _, frozen := indeterminate[name]; frozen {
				plan.Frozen = append(plan.Frozen, name)
				plan.Summary.Frozen++
				continue
			}
			role, err := h.Check(name)
			if err != nil {
				plan.Rejected = append(plan.Rejected, Rejection{Type: ActionRevokeRole, RoleName: name, Reason: err.Error(), Err: err})
				plan.Summary.Rejected++
				continue
			}
			plan.Actions = append(plan.Actions, Action{Type: ActionRevokeRole, Role: role, Reason: "no ownership rule satisfied"})
			plan.Summary.Revokes++

		case want && has:
			plan.Summary.Unchanged++
		}
	}

	return plan
}

// ApplyPlan attempts every action of the plan. A failed action does not stop
// the others.
func ApplyPlan(ctx context.Context, p platform.Platform, userID string, plan *Plan) (succeeded []Action, failures []ActionFailure) {
	for _, action := range plan.Actions {
		var err error
		switch action.Type {
		case ActionGrantRole:
			err = p.GrantRole(ctx, plan.GuildID, userID, action.Role)
		case ActionRevokeRole:
			err = p.RevokeRole(ctx, plan.GuildID, userID, action.Role)
		default:
			err = fmt.Errorf("unknown action type %q", action.Type)
		}
		if err != nil {
			failures = append(failures, ActionFailure{Action: action, Error: err.Error()})
			continue
		}
		succeeded = append(succeeded, action)
	}
	return succeeded, failures
}

// activeRoles returns the managed roles held after the given actions
// succeeded, in rule order.
func activeRoles(plan *Plan, succeeded []Action) []string {
	held := make(map[string]struct{}, len(plan.Current))
	for _, name := range plan.Current {
		held[name] = struct{}{}
	}
	for _, a := range succeeded {
		switch a.Type {
		case ActionGrantRole:
			held[a.Role.Name] = struct{}{}
		case ActionRevokeRole:
			delete(held, a.Role.Name)
		}
	}

	out := []string{}
	for _, name := range plan.Managed {
		if _, ok := held[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
