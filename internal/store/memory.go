package store

import (
	"context"
	"sort"
	"sync"

	"product-gateway/internal/model"
)

// memoryStore is the in-process fallback backend. It mirrors the Redis
// variant operation for operation: same key space, same ascending-id List
// order, same pagination. Records cross the boundary by value.
type memoryStore struct {
	mu sync.RWMutex
	m  map[int64]model.Product
}

func NewMemory() Store {
	return &memoryStore{m: make(map[int64]model.Product)}
}

func (s *memoryStore) Put(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = *p
	return nil
}

func (s *memoryStore) PutIfAbsent(_ context.Context, p *model.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; ok {
		return false, nil
	}
	s.m[p.ID] = *p
	return true, nil
}

func (s *memoryStore) Get(_ context.Context, id int64) (*model.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *memoryStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return false, nil
	}
	delete(s.m, id)
	return true, nil
}

func (s *memoryStore) List(_ context.Context, limit, offset int) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.m))
	for id := range s.m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ids = paginate(ids, limit, offset)
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, s.m[id])
	}
	return products, nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m), nil
}

func (s *memoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *memoryStore) Backend() Backend {
	return BackendMemory
}
