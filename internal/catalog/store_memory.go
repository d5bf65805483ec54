package catalog

import (
	"cmp"
	"slices"
	"sync"
)

var _ Store = (*MemStore)(nil)

type MemStore struct {
	mu      sync.RWMutex
	m       map[int]Product
	highest int
	nextID  IDFunc
}

type MemStoreOption func(*MemStore)

// WithIDs selects the id scheme used by Create. The default is SizeIDs.
func WithIDs(f IDFunc) MemStoreOption {
	return func(s *MemStore) {
		if f != nil {
			s.nextID = f
		}
	}
}

// WithProducts seeds the store.
func WithProducts(ps ...Product) MemStoreOption {
	return func(s *MemStore) {
		for _, p := range ps {
			s.insertLocked(p)
		}
	}
}

func NewMemStore(opts ...MemStoreOption) *MemStore {
	s := &MemStore{m: map[int]Product{}, nextID: SizeIDs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemStore) Insert(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(p)
}

func (s *MemStore) insertLocked(p Product) {
	s.m[p.ID] = p
	s.highest = max(s.highest, p.ID)
}

func (s *MemStore) Fetch(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

func (s *MemStore) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *MemStore) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

func (s *MemStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *MemStore) Create(p Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID(len(s.m), s.highest)
	s.insertLocked(p)
	return p
}
