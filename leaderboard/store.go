package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store records scores and answers top-N queries. Top returns at most n
// entries ordered by score descending, ties in insertion order.
type Store interface {
	Submit(ctx context.Context, name string, score int) error
	Top(ctx context.Context, n int) ([]Entry, error)
}

// MemoryStore is a Store kept in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
	now     func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: time.Now}
}

// Submit records a score
func (s *MemoryStore) Submit(ctx context.Context, name string, score int) error {
	e, err := NewEntry(name, score, s.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	// stable insert keeps earlier entries ahead of equal scores
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Score < e.Score
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
	return nil
}

// Top returns the n best entries
func (s *MemoryStore) Top(ctx context.Context, n int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.entries) {
		n = len(s.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out, nil
}

// Len returns the number of recorded scores
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
