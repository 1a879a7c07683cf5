// internal/domain/inventory/service.go
package inventory

import (
	"context"
	"fmt"
	"sync"
)

// AlertNotifier receives low-stock notifications after mutations.
// Notification is best effort and never blocks or fails a mutation.
type AlertNotifier interface {
	NotifyLowStock(items []Item)
}

// Service serializes read-modify-write cycles over the shared inventory
// document. The document store itself gives no transactional guarantees
// beyond the per-save version check, so all in-process writers go through
// here.
type Service struct {
	store    Store
	notifier AlertNotifier
	mu       sync.Mutex
}

// NewService creates a new inventory service
func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

// SetNotifier attaches a low-stock notifier
func (s *Service) SetNotifier(n AlertNotifier) {
	s.notifier = n
}

// Snapshot returns the current document for read-only use
func (s *Service) Snapshot(ctx context.Context) (*Document, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory document: %w", err)
	}
	return doc, nil
}

// Initialize creates the document from the hard-coded seed if absent
func (s *Service) Initialize(ctx context.Context) (*Document, error) {
	doc, err := s.store.Initialize(ctx, SeedDocument())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inventory document: %w", err)
	}
	return doc, nil
}

// Mutate runs one read-modify-write cycle: load the whole document, apply
// fn, write the whole document back. If fn returns an error nothing is
// persisted. A failed save surfaces as-is (ErrVersionConflict included);
// the core never retries.
func (s *Service) Mutate(ctx context.Context, fn func(doc *Document) error) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory document: %w", err)
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save inventory document: %w", err)
	}

	s.checkLowStock(doc)
	return doc, nil
}

// checkLowStock fans low-stock items out to the notifier
func (s *Service) checkLowStock(doc *Document) {
	if s.notifier == nil {
		return
	}
	low := append(doc.L1Components.LowStock(), doc.L2Components.LowStock()...)
	if len(low) == 0 {
		return
	}
	go s.notifier.NotifyLowStock(low)
}
