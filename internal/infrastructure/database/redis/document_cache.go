// internal/infrastructure/database/redis/document_cache.go
package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
)

// snapshotKey is the cache key for the current inventory document snapshot.
const snapshotKey = "inventory:document:snapshot"

// snapshotEnvelope carries the document together with the version it was
// persisted at, since the version column is not part of the document JSON.
type snapshotEnvelope struct {
	Version  int64               `json:"version"`
	Document *inventory.Document `json:"document"`
}

// CachedStore layers a Redis snapshot cache over another inventory.Store.
// Reads serve from cache when possible; writes go through to the backing
// store first and refresh the snapshot on success. Cache failures are
// logged and ignored, the backing store stays authoritative.
type CachedStore struct {
	backend inventory.Store
	client  *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a snapshot-caching store around backend
func NewCachedStore(backend inventory.Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backend: backend,
		client:  client,
		ttl:     ttl,
	}
}

// Load returns the cached snapshot when present, otherwise reads the
// backing store and refreshes the cache.
func (s *CachedStore) Load(ctx context.Context) (*inventory.Document, error) {
	if doc, ok := s.loadSnapshot(ctx); ok {
		return doc, nil
	}

	doc, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.storeSnapshot(ctx, doc)
	return doc, nil
}

// Save writes through to the backing store and refreshes the snapshot
func (s *CachedStore) Save(ctx context.Context, doc *inventory.Document) error {
	if err := s.backend.Save(ctx, doc); err != nil {
		// A stale snapshot could hand out the old version forever, so
		// drop it whenever the write is refused.
		if err == inventory.ErrVersionConflict {
			s.invalidate(ctx)
		}
		return err
	}

	s.storeSnapshot(ctx, doc)
	return nil
}

// Initialize delegates to the backing store and drops any stale snapshot
func (s *CachedStore) Initialize(ctx context.Context, seed *inventory.Document) (*inventory.Document, error) {
	doc, err := s.backend.Initialize(ctx, seed)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return doc, nil
}

func (s *CachedStore) loadSnapshot(ctx context.Context) (*inventory.Document, bool) {
	raw, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Failed to read document snapshot from Redis: %v", err)
		}
		return nil, false
	}

	var env snapshotEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Document == nil {
		s.invalidate(ctx)
		return nil, false
	}

	env.Document.Version = env.Version
	return env.Document, true
}

func (s *CachedStore) storeSnapshot(ctx context.Context, doc *inventory.Document) {
	env := snapshotEnvelope{
		Version:  doc.Version,
		Document: doc,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		log.Printf("⚠️ Failed to encode document snapshot: %v", err)
		return
	}

	if err := s.client.Set(ctx, snapshotKey, raw, s.ttl).Err(); err != nil {
		log.Printf("⚠️ Failed to write document snapshot to Redis: %v", err)
	}
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate document snapshot: %v", err)
	}
}
