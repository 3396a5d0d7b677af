package models

import "time"

// StorageEntry is one visitor-scoped key of the storefront's local storage.
type StorageEntry struct {
	VisitorID  string    `gorm:"column:visitor_id;type:varchar(64);primaryKey"`
	StorageKey string    `gorm:"column:storage_key;type:varchar(128);primaryKey"`
	Value      string    `gorm:"column:value;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (StorageEntry) TableName() string {
	return "local_storage_entries"
}
