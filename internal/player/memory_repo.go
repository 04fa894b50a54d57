package player

import (
	"context"
	"sync"
)

// MemoryRepo keeps the player record in memory (dev/test use).
type MemoryRepo struct {
	mu       sync.Mutex
	s        State
	seeded   bool
	defaults func() State
}

func NewMemoryRepo(defaults func() State) *MemoryRepo {
	return &MemoryRepo{defaults: defaults}
}

func (r *MemoryRepo) Load(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.seeded {
		r.s = r.defaults()
		r.seeded = true
	}
	return Clone(Normalize(r.s)), nil
}

func (r *MemoryRepo) Save(ctx context.Context, s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = Clone(s)
	r.seeded = true
	return nil
}
