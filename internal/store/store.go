// Package store persists the full document snapshot in a local sqlite
// database. One row under a fixed key holds the JSON-serialized aggregate;
// every save rewrites it whole (last write wins).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/offerte-app/offerte/internal/models"
)

// SnapshotKey matches the storage slot used by earlier versions of the app.
const SnapshotKey = "offerte_app_nl_v1"

// Snapshot is the single key-value row holding the serialized document.
type Snapshot struct {
	Key       string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path and migrates the snapshot
// table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return New(db)
}

// New wraps an existing gorm connection (used by tests with an in-memory
// database).
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Save serializes the document and rewrites the snapshot row.
func (s *Store) Save(doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}
	snap := Snapshot{Key: SnapshotKey, Data: data, UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("store: save snapshot: %w", err)
	}
	return nil
}

// Load deserializes the persisted document. A missing row or a snapshot that
// fails to parse falls back silently to the default document; the second
// return value reports whether a prior snapshot was restored.
func (s *Store) Load() (*models.Document, bool) {
	var snap Snapshot
	err := s.db.First(&snap, "key = ?", SnapshotKey).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// read failures degrade to defaults, never to a user-visible error
			_ = err
		}
		return models.NewDocument(), false
	}
	doc := &models.Document{}
	if err := json.Unmarshal(snap.Data, doc); err != nil {
		return models.NewDocument(), false
	}
	doc.Normalize()
	return doc, true
}

// Delete removes the persisted snapshot (the reset action).
func (s *Store) Delete() error {
	if err := s.db.Delete(&Snapshot{}, "key = ?", SnapshotKey).Error; err != nil {
		return fmt.Errorf("store: delete snapshot: %w", err)
	}
	return nil
}
