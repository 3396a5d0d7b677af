package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/localarthub-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists entries in the local_storage_entries table.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(conn *gorm.DB) (*GormStore, error) {
	if conn == nil {
		return nil, errors.New("gorm connection required")
	}
	return &GormStore{db: conn, now: time.Now}, nil
}

func (s *GormStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND storage_key = ?", visitorID, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, visitorID, key, value string) error {
	entry := models.StorageEntry{
		VisitorID:  visitorID,
		StorageKey: key,
		Value:      value,
		UpdatedAt:  s.now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND storage_key IN ?", visitorID, keys).
		Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}
