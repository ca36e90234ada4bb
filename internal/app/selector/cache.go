package selector

import (
	"context"
	"sync"
	"time"
)

// OptionCache хранит списки вариантов с ограниченным временем жизни
type OptionCache interface {
	Get(ctx context.Context, key string) ([]Option, bool)
	Set(ctx context.Context, key string, options []Option, ttl time.Duration)
}

type memoryEntry struct {
	options   []Option
	expiresAt time.Time
}

// MemoryCache - OptionCache в памяти процесса
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]Option, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return append([]Option(nil), entry.options...), true
}

func (m *MemoryCache) Set(_ context.Context, key string, options []Option, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		options:   append([]Option(nil), options...),
		expiresAt: m.now().Add(ttl),
	}
}
