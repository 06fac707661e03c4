package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viktor-dev-tools/devcli/domain"
	"github.com/viktor-dev-tools/devcli/domain/model"
)

// StashRepository is a thread-safe in-memory implementation, used by tests.
type StashRepository struct {
	mu      sync.RWMutex
	stashes map[string]*model.Stash
	seq     int64
}

func NewStashRepository() *StashRepository {
	return &StashRepository{stashes: make(map[string]*model.Stash)}
}

func (r *StashRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("stash-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *StashRepository) Create(_ context.Context, s *model.Stash) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID()
	}
	// Copy to avoid external mutation.
	cp := *s
	r.stashes[s.ID] = &cp
	return nil
}

func (r *StashRepository) Get(_ context.Context, id string) (*model.Stash, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stashes[id]
	if !ok {
		return nil, model.ErrStashNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *StashRepository) List(_ context.Context) ([]*model.Stash, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Stash, 0, len(r.stashes))
	for _, v := range r.stashes {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *StashRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stashes[id]; !ok {
		return model.ErrStashNotFound
	}
	delete(r.stashes, id)
	return nil
}

var _ domain.StashRepository = (*StashRepository)(nil)
