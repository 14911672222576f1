package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"lunar-assistant/core/platform"
)

const guildPageSize = 200

// codeUnknownMember is the API error code for a missing guild member.
const codeUnknownMember = 10007

var _ platform.Platform = (*Client)(nil)

type apiGuild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiRole struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type apiMember struct {
	Roles []string `json:"roles"`
}

type apiUser struct {
	ID string `json:"id"`
}

// MemberGuilds lists the bot's guilds the user is a member of.
func (c *Client) MemberGuilds(ctx context.Context, userID string) ([]platform.Guild, error) {
	var (
		guilds []platform.Guild
		after  string
	)
	for {
		q := url.Values{"limit": {fmt.Sprint(guildPageSize)}}
		if after != "" {
			q.Set("after", after)
		}
		var page []apiGuild
		if err := c.do(ctx, http.MethodGet, "/users/@me/guilds?"+q.Encode(), nil, &page, ""); err != nil {
			return nil, fmt.Errorf("list bot guilds: %w", err)
		}

		for _, g := range page {
			_, err := c.member(ctx, g.ID, userID)
			if errors.Is(err, platform.ErrNotMember) {
				continue
			}
			if err != nil {
				return nil, err
			}
			guilds = append(guilds, platform.Guild{ID: g.ID, Name: g.Name})
		}

		if len(page) < guildPageSize {
			return guilds, nil
		}
		after = page[len(page)-1].ID
	}
}

// MemberRoles returns the user's role names, highest first.
func (c *Client) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	m, err := c.member(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}
	roles, err := c.guildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]apiRole, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	held := make([]apiRole, 0, len(m.Roles))
	for _, id := range m.Roles {
		if r, ok := byID[id]; ok {
			held = append(held, r)
		}
	}
	sort.SliceStable(held, func(i, j int) bool { return held[i].Position > held[j].Position })

	names := make([]string, len(held))
	for i, r := range held {
		names[i] = r.Name
	}
	return names, nil
}

// Hierarchy reads the guild roles and the bot member's highest position.
func (c *Client) Hierarchy(ctx context.Context, guildID string) (*platform.Hierarchy, error) {
	botID, err := c.botUserID(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := c.guildRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}
	bot, err := c.member(ctx, guildID, botID)
	if err != nil {
		return nil, fmt.Errorf("read bot member: %w", err)
	}

	held := make(map[string]struct{}, len(bot.Roles))
	for _, id := range bot.Roles {
		held[id] = struct{}{}
	}

	out := make([]platform.Role, 0, len(roles))
	botPosition := 0
	botRole := c.cfg.BotRoleName
	for _, r := range roles {
		out = append(out, platform.Role{ID: r.ID, Name: r.Name, Position: r.Position})
		if _, ok := held[r.ID]; ok && r.Position > botPosition {
			botPosition = r.Position
			if c.cfg.BotRoleName == "" {
				botRole = r.Name
			}
		}
	}
	return platform.NewHierarchy(botRole, botPosition, out), nil
}

// GrantRole adds the role to the member.
func (c *Client) GrantRole(ctx context.Context, guildID, userID string, role platform.Role) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", url.PathEscape(guildID), url.PathEscape(userID), url.PathEscape(role.ID))
	if err := c.do(ctx, http.MethodPut, path, nil, nil, "ownership rule satisfied"); err != nil {
		return fmt.Errorf("grant %s: %w", role.Name, err)
	}
	return nil
}

// RevokeRole removes the role from the member.
func (c *Client) RevokeRole(ctx context.Context, guildID, userID string, role platform.Role) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", url.PathEscape(guildID), url.PathEscape(userID), url.PathEscape(role.ID))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, "ownership rule no longer satisfied"); err != nil {
		return fmt.Errorf("revoke %s: %w", role.Name, err)
	}
	return nil
}

func (c *Client) member(ctx context.Context, guildID, userID string) (*apiMember, error) {
	var m apiMember
	path := fmt.Sprintf("/guilds/%s/members/%s", url.PathEscape(guildID), url.PathEscape(userID))
	err := c.do(ctx, http.MethodGet, path, nil, &m, "")
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.Code == codeUnknownMember) {
		return nil, fmt.Errorf("guild %s: %w", guildID, platform.ErrNotMember)
	}
	if err != nil {
		return nil, fmt.Errorf("read member: %w", err)
	}
	return &m, nil
}

func (c *Client) guildRoles(ctx context.Context, guildID string) ([]apiRole, error) {
	var roles []apiRole
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s/roles", url.PathEscape(guildID)), nil, &roles, ""); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// botUserID resolves and remembers the bot's own user id.
func (c *Client) botUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.botID != "" {
		return c.botID, nil
	}
	var u apiUser
	if err := c.do(ctx, http.MethodGet, "/users/@me", nil, &u, ""); err != nil {
		return "", fmt.Errorf("read bot user: %w", err)
	}
	c.botID = u.ID
	return c.botID, nil
}
