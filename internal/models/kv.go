package models

import "time"

// KVEntry is one namespaced record of the durable key-value store.
// Each entry holds a whole serialized collection.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string { return "kv_entries" }
