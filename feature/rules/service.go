package rules

import (
	"context"
	"fmt"

	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/keylock"
	"lunar-assistant/core/platform"
	corerules "lunar-assistant/core/rules"

	"go.uber.org/zap"
)

// Service edits the rule configuration of communities.
type Service struct {
	store    guildconfig.Store
	platform platform.Platform
	logger   *zap.Logger
	locks    *keylock.Locker
}

// NewService creates a new rules service.
func NewService(store guildconfig.Store, p platform.Platform, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		platform: p,
		logger:   logger,
		locks:    keylock.New(),
	}
}

// AddRule parses the input, verifies the bot can manage the target role and
// appends the rule. It returns the new rule's index.
func (s *Service) AddRule(ctx context.Context, guildID string, input corerules.RuleInput) (int, corerules.GuildRule, error) {
	rule, err := input.Parse()
	if err != nil {
		return 0, corerules.GuildRule{}, err
	}

	unlock, err := s.locks.Lock(ctx, guildID)
	if err != nil {
		return 0, rule, err
	}
	defer unlock()

	hierarchy, err := s.platform.Hierarchy(ctx, guildID)
	if err != nil {
		return 0, rule, fmt.Errorf("read role hierarchy: %w", err)
	}
	if _, err := hierarchy.Check(rule.RoleName); err != nil {
		return 0, rule, err
	}

	cfg, ok, err := s.store.Get(ctx, guildID)
	if err != nil {
		return 0, rule, err
	}
	if !ok {
		cfg = &corerules.GuildConfig{}
	}
	index := cfg.Add(rule)
	if err := s.store.Put(ctx, guildID, cfg); err != nil {
		return 0, rule, err
	}

	s.logger.Info("Rule added",
		zap.String("guild", guildID),
		zap.Int("index", index),
		zap.String("role", rule.RoleName))
	return index, rule, nil
}

// ListRules returns the community's rules in stored order.
func (s *Service) ListRules(ctx context.Context, guildID string) ([]corerules.RuleSummary, error) {
	cfg, ok, err := s.store.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, corerules.ErrNoRules
	}
	return cfg.Summaries(), nil
}

// RemoveRule deletes the rule at index. The remaining rules keep their
// relative order and are renumbered.
func (s *Service) RemoveRule(ctx context.Context, guildID string, index int) (corerules.GuildRule, error) {
	unlock, err := s.locks.Lock(ctx, guildID)
	if err != nil {
		return corerules.GuildRule{}, err
	}
	defer unlock()

	cfg, ok, err := s.store.Get(ctx, guildID)
	if err != nil {
		return corerules.GuildRule{}, err
	}
	if !ok {
		return corerules.GuildRule{}, corerules.ErrNoRules
	}

	removed, err := cfg.Remove(index)
	if err != nil {
		return corerules.GuildRule{}, err
	}
	if err := s.store.Put(ctx, guildID, cfg); err != nil {
		return corerules.GuildRule{}, err
	}

	s.logger.Info("Rule removed",
		zap.String("guild", guildID),
		zap.Int("index", index),
		zap.String("role", removed.RoleName))
	return removed, nil
}
