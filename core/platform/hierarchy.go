package platform

import (
	"fmt"

	"lunar-assistant/core/rules"
)

// Hierarchy is a snapshot of a community's role ordering.
type Hierarchy struct {
	// BotRole is the bot's role name, used in corrective messages.
	BotRole string
	// BotPosition is the position of the bot's highest role.
	BotPosition int
	// Roles maps role name to role.
	Roles map[string]Role
}

// NewHierarchy indexes roles by name. On duplicate names the highest
// positioned role wins.
func NewHierarchy(botRole string, botPosition int, roles []Role) *Hierarchy {
	h := &Hierarchy{
		BotRole:     botRole,
		BotPosition: botPosition,
		Roles:       make(map[string]Role, len(roles)),
	}
	for _, r := range roles {
		if existing, ok := h.Roles[r.Name]; ok && existing.Position > r.Position {
			continue
		}
		h.Roles[r.Name] = r
	}
	return h
}

// Lookup returns the role with the given name.
func (h *Hierarchy) Lookup(name string) (Role, bool) {
	r, ok := h.Roles[name]
	return r, ok
}

// Check verifies the bot can manage the named role: the role must exist and
// sit strictly below the bot's highest role.
func (h *Hierarchy) Check(name string) (Role, error) {
	role, ok := h.Lookup(name)
	if !ok {
		return Role{}, fmt.Errorf("%w: %s", rules.ErrRoleNotFound, name)
	}
	if role.Position >= h.BotPosition {
		return role, &rules.HierarchyError{BotRole: h.BotRole, Role: role.Name}
	}
	return role, nil
}
