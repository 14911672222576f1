package wallet

import "time"

// Link is a row of the wallet_links table.
type Link struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:64" json:"user_id"`
	Address   string    `gorm:"column:address;size:128;not null" json:"address"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name.
func (Link) TableName() string { return "wallet_links" }
