package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/costopro/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV stores entries in the kv_entries table (sqlite or postgres).
// The table is created by db.Migrate.
type GormKV struct {
	DB  *gorm.DB
	now func() time.Time
}

// NewGormKV creates a gorm-backed KV.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{DB: db, now: time.Now}
}

func (s *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.DB.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return entry.Value, nil
}

// Put upserts the entry in a single statement.
func (s *GormKV) Put(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: s.now()}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
