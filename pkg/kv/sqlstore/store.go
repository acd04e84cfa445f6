// Package sqlstore persists blobs in the kv_blobs table through gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/partcustody/pkg/db"
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/kv"
)

// Blob is one row of kv_blobs.
type Blob struct {
	Key       string    `gorm:"column:blob_key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Blob) TableName() string { return "kv_blobs" }

// Store implements kv.Store over a SQL database.
type Store struct {
	conn *gorm.DB
	now  func() time.Time
}

// New wraps an open database client. The kv_blobs table must already exist.
func New(client *db.Client) (*Store, error) {
	if client == nil || client.DB() == nil {
		return nil, errors.New("db client required")
	}
	return &Store{conn: client.DB(), now: time.Now}, nil
}

// Driver returns the blob driver identifier.
func (s *Store) Driver() enums.StorageDriver { return enums.StorageDriverSQL }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var row Blob
	err := s.conn.WithContext(ctx).Where("blob_key = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("select blob %q: %w", key, err)
	}
	return []byte(row.Payload), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	row := Blob{Key: key, Payload: string(value), UpdatedAt: s.now().UTC()}
	err := s.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert blob %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Where("blob_key = ?", key).Delete(&Blob{}).Error; err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}
