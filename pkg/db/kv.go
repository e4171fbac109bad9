package db

import (
	"context"
	"errors"
	"time"

	"github.com/paoquentinho/storefront/pkg/db/models"
	"github.com/paoquentinho/storefront/pkg/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore is a storage.Store over the storage_entries table.
type KVStore struct {
	client *Client
	now    func() time.Time
}

var (
	_ storage.Store = (*KVStore)(nil)
	_ storage.Mover = (*KVStore)(nil)
)

func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.StorageEntry
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(s.client.DB().WithContext(ctx), models.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.client.DB().WithContext(ctx).
		Where("key = ?", key).
		Delete(&models.StorageEntry{}).Error
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Move copies the value under from to to and deletes from in one
// transaction. A missing source is a no-op.
func (s *KVStore) Move(ctx context.Context, from, to string) error {
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		var entry models.StorageEntry
		err := tx.Where("key = ?", from).Take(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		moved := models.StorageEntry{Key: to, Value: entry.Value, UpdatedAt: s.now().UTC()}
		if err := upsert(tx, moved); err != nil {
			return err
		}
		return tx.Where("key = ?", from).Delete(&models.StorageEntry{}).Error
	})
}

func upsert(conn *gorm.DB, entry models.StorageEntry) error {
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
