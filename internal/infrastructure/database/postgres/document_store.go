// internal/infrastructure/database/postgres/document_store.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// documentRowID is the fixed primary key of the single inventory document.
const documentRowID = 1

// documentRow is the persisted form of the inventory document. The whole
// document lives in one JSONB payload guarded by an optimistic version column.
type documentRow struct {
	ID        int             `gorm:"primaryKey"`
	Payload   json.RawMessage `gorm:"type:jsonb;not null"`
	Version   int64           `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (documentRow) TableName() string {
	return "inventory_documents"
}

// DocumentStore persists the inventory document in PostgreSQL.
// It implements inventory.Store.
type DocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore creates a new PostgreSQL-backed document store
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{
		db: db,
	}
}

// Load reads the current document and its version
func (s *DocumentStore) Load(ctx context.Context) (*inventory.Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, documentRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load inventory document: %w", err)
	}

	var doc inventory.Document
	if err := json.Unmarshal(row.Payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode inventory document: %w", err)
	}
	doc.Version = row.Version

	return &doc, nil
}

// Save writes the document back, guarded by the version it was loaded at.
// A stale version returns inventory.ErrVersionConflict.
func (s *DocumentStore) Save(ctx context.Context, doc *inventory.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode inventory document: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("id = ? AND version = ?", documentRowID, doc.Version).
		Updates(map[string]interface{}{
			"payload":    payload,
			"version":    doc.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save inventory document: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&documentRow{}).Where("id = ?", documentRowID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to save inventory document: %w", err)
		}
		if count == 0 {
			return inventory.ErrNotFound
		}
		return inventory.ErrVersionConflict
	}

	doc.Version++
	return nil
}

// Initialize inserts the seed document if no document exists yet and
// returns the current one
func (s *DocumentStore) Initialize(ctx context.Context, seed *inventory.Document) (*inventory.Document, error) {
	doc, err := s.Load(ctx)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, inventory.ErrNotFound) {
		return nil, err
	}

	payload, err := json.Marshal(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seed document: %w", err)
	}

	row := documentRow{
		ID:        documentRowID,
		Payload:   payload,
		Version:   1,
		UpdatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory document: %w", err)
	}

	seed.Version = 1
	return seed, nil
}
