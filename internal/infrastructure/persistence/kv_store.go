package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

// kvEntry is one persisted key-value document
type kvEntry struct {
	Key   string `gorm:"type:varchar(100);primaryKey"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (kvEntry) TableName() string {
	return "kv_entries"
}

// GormKVStore implements storage.KVStore on a database table. Writes
// enforce a total-bytes quota across all stored values, mirroring the
// quota a browser imposes on local storage.
type GormKVStore struct {
	db       *gorm.DB
	maxBytes int
}

// NewGormKVStore creates a new GormKVStore with the given quota.
// A non-positive maxBytes falls back to storage.DefaultMaxBytes.
func NewGormKVStore(db *gorm.DB, maxBytes int) *GormKVStore {
	if maxBytes <= 0 {
		maxBytes = storage.DefaultMaxBytes
	}
	return &GormKVStore{db: db, maxBytes: maxBytes}
}

// Get returns the value stored under key, or shared.ErrNotFound
func (s *GormKVStore) Get(ctx context.Context, key string) (string, error) {
	var entry kvEntry
	if err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// Set stores value under key, replacing any previous value. It fails
// with storage.ErrQuotaExceeded when the write would push the total
// stored bytes over the quota.
func (s *GormKVStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&kvEntry{}).
			Where("key <> ?", key).
			Select("COALESCE(SUM(LENGTH(value)), 0)").
			Scan(&used).Error; err != nil {
			return err
		}
		if used+int64(len(value)) > int64(s.maxBytes) {
			return storage.ErrQuotaExceeded
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&kvEntry{Key: key, Value: value}).Error
	})
}

// Delete removes the value stored under key. Deleting a missing key is
// not an error.
func (s *GormKVStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&kvEntry{}, "key = ?", key).Error
}

var _ storage.KVStore = (*GormKVStore)(nil)
