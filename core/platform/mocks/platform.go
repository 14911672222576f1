package mocks

import (
	"context"

	"lunar-assistant/core/platform"

	"github.com/stretchr/testify/mock"
)

// Platform is a mock implementation of platform.Platform
type Platform struct {
	mock.Mock
}

func (m *Platform) MemberGuilds(ctx context.Context, userID string) ([]platform.Guild, error) {
	args := m.Called(ctx, userID)
	if guilds, ok := args.Get(0).([]platform.Guild); ok {
		return guilds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Platform) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	args := m.Called(ctx, guildID, userID)
	if roles, ok := args.Get(0).([]string); ok {
		return roles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Platform) Hierarchy(ctx context.Context, guildID string) (*platform.Hierarchy, error) {
	args := m.Called(ctx, guildID)
	if h, ok := args.Get(0).(*platform.Hierarchy); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Platform) GrantRole(ctx context.Context, guildID, userID string, role platform.Role) error {
	args := m.Called(ctx, guildID, userID, role)
	return args.Error(0)
}

func (m *Platform) RevokeRole(ctx context.Context, guildID, userID string, role platform.Role) error {
	args := m.Called(ctx, guildID, userID, role)
	return args.Error(0)
}
