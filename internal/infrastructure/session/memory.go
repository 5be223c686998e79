package session

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/clubhouse/internal/domain/repository"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore keeps bindings in process. Expired entries are dropped lazily on Get
// and by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		if cur, still := s.entries[token]; still && cur == e {
			delete(s.entries, token)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.userID, true, nil
}

// Bind stores the binding; ttl <= 0 means no expiry.
func (s *MemoryStore) Bind(_ context.Context, token, userID string, ttl time.Duration) error {
	e := memoryEntry{userID: userID}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[token] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Unbind(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

// Sweep removes expired bindings and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for tok, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, tok)
			n++
		}
	}
	return n
}

// Len reports the number of stored bindings, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

var _ repository.SessionRepository = (*MemoryStore)(nil)
