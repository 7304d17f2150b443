// Package cache stores rendered API responses keyed by request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache is a string key/value store with a fixed entry lifetime.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a cache key from an endpoint and its request body.
func Key(endpoint string, body []byte) string {
	sum := sha256.Sum256(body)
	return "realestate-calc:" + endpoint + ":" + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache for single instance deployments and
// tests.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
	lastSweep  time.Time
	now        func() time.Time
}

// DefaultMaxEntries bounds a MemoryCache created by NewMemoryCache.
const DefaultMaxEntries = 10000

// NewMemoryCache creates a MemoryCache holding at most DefaultMaxEntries
// entries. A non-positive ttl keeps entries until they are overwritten or
// evicted.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Get returns the live value for key.
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores value under key.
func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.ttl > 0 && now.Sub(m.lastSweep) >= m.ttl {
		m.sweep(now)
	}
	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.sweep(now)
		if len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
	}

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}
	m.entries[key] = entry
	return nil
}

// sweep drops expired entries. The caller holds m.mu.
func (m *MemoryCache) sweep(now time.Time) {
	m.lastSweep = now
	for key, entry := range m.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// evictOldest drops the entry closest to expiry, or an arbitrary one when
// entries never expire. The caller holds m.mu.
func (m *MemoryCache) evictOldest() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, entry := range m.entries {
		if !found || entry.expiresAt.Before(oldest) {
			victim, oldest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.entries, victim)
	}
}

// Len returns the number of stored entries, including expired entries not
// yet swept.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
