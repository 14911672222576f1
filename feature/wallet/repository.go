package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidAddress is returned for an empty or malformed address.
var ErrInvalidAddress = errors.New("invalid wallet address")

// Repository reads and writes wallet links.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetLinkedWallet returns the user's address and whether one is linked.
func (r *Repository) GetLinkedWallet(ctx context.Context, userID string) (string, bool, error) {
	var link Link
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read wallet link: %w", err)
	}
	return link.Address, true, nil
}

// Link stores address for the user, replacing any previous link.
func (r *Repository) Link(ctx context.Context, userID, address string) (*Link, error) {
	address = strings.TrimSpace(address)
	if address == "" || strings.ContainsAny(address, " \t\r\n/") {
		return nil, ErrInvalidAddress
	}

	now := time.Now().UTC()
	link := &Link{UserID: userID, Address: address, CreatedAt: now, UpdatedAt: now}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "updated_at"}),
	}).Create(link).Error
	if err != nil {
		return nil, fmt.Errorf("failed to link wallet: %w", err)
	}
	return link, nil
}
