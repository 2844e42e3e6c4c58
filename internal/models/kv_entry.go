package models

import "time"

// KVEntry is one serialized collection in the relational backends.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"column:entry_value;type:longtext;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
