// Package conversation keeps a bounded per-user history of recent queries,
// used for light query expansion.
package conversation

import (
	"sync"
	"time"

	"github.com/quaero-ai/quaero/models"
)

// Entry is a light-weight projection of one answered query.
type Entry struct {
	Query      string
	Intent     models.Intent
	Confidence float64
	Timestamp  time.Time
}

// Store holds per-user histories, each trimmed to maxEntries immediately
// after append.
type Store struct {
	mu         sync.RWMutex
	maxEntries int
	byUser     map[string][]Entry
}

// New creates a store bounding each user's history at maxEntries.
func New(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = 10
	}
	return &Store{
		maxEntries: maxEntries,
		byUser:     make(map[string][]Entry),
	}
}

// Append records an entry for the user, dropping the oldest entries beyond
// the configured bound.
func (s *Store) Append(userID string, e Entry) {
	if userID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append(s.byUser[userID], e)
	if len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}
	s.byUser[userID] = entries
}

// Recent returns up to n most recent entries for the user, newest last.
func (s *Store) Recent(userID string, n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byUser[userID]
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, n)
	copy(out, entries[len(entries)-n:])
	return out
}

// Len reports the history length for the user.
func (s *Store) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser[userID])
}
