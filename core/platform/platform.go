package platform

import (
	"context"
	"errors"
)

// ErrNotMember is returned when the user is not a member of the community.
var ErrNotMember = errors.New("user is not a member of the community")

// Guild is a community the user belongs to.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Role is a role of a community.
type Role struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Platform is the role API of the community platform.
type Platform interface {
	// MemberGuilds lists the communities shared by the user and the bot.
	MemberGuilds(ctx context.Context, userID string) ([]Guild, error)
	// MemberRoles returns the names of the roles the user currently holds.
	MemberRoles(ctx context.Context, guildID, userID string) ([]string, error)
	// Hierarchy returns the community's roles and the bot's position.
	Hierarchy(ctx context.Context, guildID string) (*Hierarchy, error)
	// GrantRole gives the role to the user.
	GrantRole(ctx context.Context, guildID, userID string, role Role) error
	// RevokeRole takes the role from the user.
	RevokeRole(ctx context.Context, guildID, userID string, role Role) error
}
