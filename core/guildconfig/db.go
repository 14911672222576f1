package guildconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lunar-assistant/core/rules"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a row of the guild_configs table.
type Record struct {
	GuildID   string    `gorm:"column:guild_id;primaryKey;size:64"`
	Document  string    `gorm:"column:document;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (Record) TableName() string { return "guild_configs" }

// DBStore keeps configurations in the guild_configs table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a database backed store.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(ctx context.Context, guildID string) (*rules.GuildConfig, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rules of guild %s: %w", guildID, err)
	}

	var cfg rules.GuildConfig
	if err := json.Unmarshal([]byte(rec.Document), &cfg); err != nil {
		return nil, false, fmt.Errorf("malformed rules document for guild %s: %w", guildID, err)
	}
	return &cfg, true, nil
}

func (s *DBStore) Put(ctx context.Context, guildID string, cfg *rules.GuildConfig) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	rec := Record{GuildID: guildID, Document: string(data), UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write rules of guild %s: %w", guildID, err)
	}
	return nil
}
