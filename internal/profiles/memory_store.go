package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryDirectory implements Directory with in-memory storage.
type MemoryDirectory struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryDirectory creates a new in-memory profile directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{profiles: make(map[string]Profile)}
}

func (d *MemoryDirectory) Get(_ context.Context, userID string) (*Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (d *MemoryDirectory) Put(_ context.Context, p *Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cp := *p
	now := time.Now()
	if existing, ok := d.profiles[p.UserID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	d.profiles[p.UserID] = cp
	return nil
}
