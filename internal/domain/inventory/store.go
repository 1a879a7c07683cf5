// internal/domain/inventory/store.go
package inventory

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no document has been initialized
var ErrNotFound = errors.New("inventory document not found")

// ErrVersionConflict is returned by Save when the document changed since it
// was loaded. The core never retries; callers decide.
var ErrVersionConflict = errors.New("inventory document version conflict")

// Store is the narrow persistence contract for the inventory document.
// Implementations may add optimistic versioning behind Save without the
// engines noticing.
type Store interface {
	// Load fetches the entire current document
	Load(ctx context.Context) (*Document, error)

	// Save writes the whole document back. Implementations check the
	// document's version and return ErrVersionConflict on a lost race;
	// on success the document's version is advanced.
	Save(ctx context.Context, doc *Document) error

	// Initialize creates the document if absent and returns the current one
	Initialize(ctx context.Context, seed *Document) (*Document, error)
}

// MemoryStore is an in-memory Store used by tests and local tooling
type MemoryStore struct {
	mu  sync.Mutex
	doc *Document
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a deep copy of the current document
func (m *MemoryStore) Load(ctx context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return m.doc.Clone()
}

// Save stores a deep copy of the document, enforcing the version check
func (m *MemoryStore) Save(ctx context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return ErrNotFound
	}
	if doc.Version != m.doc.Version {
		return ErrVersionConflict
	}
	clone, err := doc.Clone()
	if err != nil {
		return err
	}
	clone.Version = m.doc.Version + 1
	m.doc = clone
	doc.Version = clone.Version
	return nil
}

// Initialize seeds the store if it is empty
func (m *MemoryStore) Initialize(ctx context.Context, seed *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		clone, err := seed.Clone()
		if err != nil {
			return nil, err
		}
		clone.Version = 1
		m.doc = clone
	}
	return m.doc.Clone()
}
