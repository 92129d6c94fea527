package ecs

// PtrComponentStore is a generic typed map store keyed by entity id.
// Iteration follows insertion order so per-tick work is deterministic.
// No reflect, no interface{}: pure generics.
type PtrComponentStore[T any] struct {
	data  map[EntityID]*T
	order []EntityID
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data:  make(map[EntityID]*T, 256),
		order: make([]EntityID, 0, 256),
	}
}

// Set inserts or replaces the component for id. Replacing keeps the
// original iteration position.
func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	if _, ok := s.data[id]; !ok {
		s.order = append(s.order, id)
	}
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

// Remove deletes id. Unknown ids are ignored.
func (s *PtrComponentStore[T]) Remove(id EntityID) {
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Each visits every component in insertion order. Components added during
// the walk are not visited; components removed during the walk are skipped.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	s.Range(func(id EntityID, c *T) bool {
		fn(id, c)
		return true
	})
}

// Range is Each with early exit: iteration stops when fn returns false.
func (s *PtrComponentStore[T]) Range(fn func(EntityID, *T) bool) {
	ids := make([]EntityID, len(s.order))
	copy(ids, s.order)
	for _, id := range ids {
		c, ok := s.data[id]
		if !ok {
			continue
		}
		if !fn(id, c) {
			return
		}
	}
}
