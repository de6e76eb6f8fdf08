package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory draft store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]*Draft)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Layout = d.Layout.Clone()
	return &cp, nil
}

func (s *MemoryStore) Set(ctx context.Context, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *draft
	cp.Layout = draft.Layout.Clone()
	s.drafts[draft.ID] = &cp
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		cp := *d
		cp.Layout = d.Layout.Clone()
		out = append(out, &cp)
	}
	sortDrafts(out)
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
