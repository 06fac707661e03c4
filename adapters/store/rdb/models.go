package rdb

import "time"

// StashRecord is the RDB persistence model for domain Stash.
// Table name: stashes
type StashRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	Name        string    `gorm:"type:text;not null"`
	Subdomain   string    `gorm:"type:text;not null"`
	WorkspaceID int64     `gorm:"not null"`
	Path        string    `gorm:"type:text;not null"`
	EntityCount int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (StashRecord) TableName() string { return "stashes" }
