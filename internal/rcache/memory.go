package rcache

import (
	"sync"
	"time"

	"github.com/quaero-ai/quaero/models"
)

type memoryEntry struct {
	response  models.Response
	timestamp time.Time
}

// Memory is an in-process cache bounded by entry count. Expired entries are
// treated as misses but stay in place until size pressure evicts them.
type Memory struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
	now        func() time.Time
}

// NewMemory creates a cache holding at most maxEntries responses, each
// fresh for ttl.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
	}
}

// Get returns the cached response for key. Entries past their TTL report a
// miss without being removed.
func (m *Memory) Get(key string) (models.Response, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return models.Response{}, false
	}
	if m.now().Sub(entry.timestamp) > m.ttl {
		return models.Response{}, false
	}
	return entry.response, true
}

// Put inserts or overwrites the response with the current timestamp. When
// the cap is exceeded the entry with the oldest timestamp is evicted.
func (m *Memory) Put(key string, resp models.Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{response: resp, timestamp: m.now()}
	if len(m.entries) <= m.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range m.entries {
		if first || e.timestamp.Before(oldest) {
			oldestKey, oldest = k, e.timestamp
			first = false
		}
	}
	delete(m.entries, oldestKey)
}

// Len reports the number of resident entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
