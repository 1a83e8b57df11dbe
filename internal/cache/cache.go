package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache is a TTL key/value store for memoizing pure sub-computations.
// Values are pure functions of their keys, so recomputation on a miss is
// always safe; staleness beyond TTL is the only concern.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Key hashes the parts into a stable cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Memory is an in-process TTL cache. Entries are evicted lazily on read
// and swept when the map grows past sweepThreshold.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value  []byte
	expiry time.Time
}

const sweepThreshold = 4096

func NewMemory() *Memory {
	return &Memory{entries: map[string]memEntry{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiry) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) >= sweepThreshold {
		now := time.Now()
		for k, e := range m.entries {
			if now.After(e.expiry) {
				delete(m.entries, k)
			}
		}
	}
	m.entries[key] = memEntry{value: value, expiry: time.Now().Add(ttl)}
}

// Nop disables memoization.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
