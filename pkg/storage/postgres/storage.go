package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"niv-scholar-be/pkg/storage"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry is one key with its whole JSON value.
type StorageEntry struct {
	Key       string         `gorm:"primaryKey;type:varchar(255)"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

type Storage struct {
	db *gorm.DB
}

var _ storage.Storage = &Storage{}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Migrate creates the storage_entries table if needed.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&StorageEntry{})
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry StorageEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return string(entry.Value), true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	entry := StorageEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
