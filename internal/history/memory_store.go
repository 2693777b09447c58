package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/remitd/remitd/internal/limits"
)

// MemoryStore implements Store with in-memory storage.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]limits.TransactionRecord
	byID   map[string]*recordRef
}

type recordRef struct {
	userID string
	index  int
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]limits.TransactionRecord),
		byID:   make(map[string]*recordRef),
	}
}

func (s *MemoryStore) Append(_ context.Context, rec limits.TransactionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("history: record ID required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[rec.ID]; exists {
		return fmt.Errorf("history: duplicate record ID %q", rec.ID)
	}
	s.byUser[rec.UserID] = append(s.byUser[rec.UserID], rec)
	s.byID[rec.ID] = &recordRef{userID: rec.UserID, index: len(s.byUser[rec.UserID]) - 1}
	return nil
}

func (s *MemoryStore) ListSince(_ context.Context, userID string, since time.Time) ([]limits.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []limits.TransactionRecord
	for _, rec := range s.byUser[userID] {
		if !rec.CreatedAt.Before(since) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status limits.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("history: record %q not found", id)
	}
	s.byUser[ref.userID][ref.index].Status = status
	return nil
}
