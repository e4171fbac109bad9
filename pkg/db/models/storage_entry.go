package models

import "time"

// StorageEntry is one persisted storefront record keyed by its storage key.
type StorageEntry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (StorageEntry) TableName() string { return "storage_entries" }
