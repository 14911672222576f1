package guildconfig

import (
	"context"
	"fmt"

	"lunar-assistant/core/rules"
	"lunar-assistant/core/storage"

	"gorm.io/gorm"
)

// Store loads and saves rule configurations by community id.
type Store interface {
	// Get returns the community's configuration and whether it exists.
	Get(ctx context.Context, guildID string) (*rules.GuildConfig, bool, error)
	// Put replaces the community's configuration.
	Put(ctx context.Context, guildID string, cfg *rules.GuildConfig) error
}

// Config selects and configures the backend.
type Config struct {
	// Backend is "storage" or "database".
	Backend string `mapstructure:"backend" default:"storage"`
	// Prefix is the object key prefix of the storage backend.
	Prefix string `mapstructure:"prefix" default:"rules"`
}

// New builds the configured backend. The unused dependency may be nil.
func New(cfg Config, client storage.Client, bucket string, db *gorm.DB) (Store, error) {
	switch cfg.Backend {
	case "", "storage":
		if client == nil {
			return nil, fmt.Errorf("rules backend %q needs a storage client", "storage")
		}
		return NewObjectStore(client, bucket, cfg.Prefix), nil
	case "database":
		if db == nil {
			return nil, fmt.Errorf("rules backend %q needs a database connection", "database")
		}
		return NewDBStore(db), nil
	default:
		return nil, fmt.Errorf("unknown rules backend %q", cfg.Backend)
	}
}
