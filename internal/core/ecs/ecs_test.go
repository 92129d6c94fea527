package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDAllocatorMonotonic(t *testing.T) {
	a := NewIDAllocator(0)
	require.Equal(t, EntityID(1), a.Peek())
	seen := make(map[EntityID]bool)
	for i := 0; i < 100; i++ {
		id := a.Next()
		require.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	require.Equal(t, EntityID(101), a.Peek())
}

func TestIDAllocatorExhaustionPanics(t *testing.T) {
	a := NewIDAllocator(1<<31 - 1)
	a.Next()
	require.Panics(t, func() { a.Next() })
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewPtrComponentStore[string]()
	a, b, c := "a", "b", "c"
	s.Set(3, &a)
	s.Set(1, &b)
	s.Set(2, &c)
	s.Set(3, &c) // replace keeps position

	var got []EntityID
	s.Each(func(id EntityID, _ *string) { got = append(got, id) })
	require.Equal(t, []EntityID{3, 1, 2}, got)

	s.Remove(1)
	s.Remove(42)
	got = got[:0]
	s.Each(func(id EntityID, _ *string) { got = append(got, id) })
	require.Equal(t, []EntityID{3, 2}, got)
	require.Equal(t, 2, s.Len())
	require.False(t, s.Has(1))
}

func TestStoreRangeStopsAndToleratesMutation(t *testing.T) {
	s := NewPtrComponentStore[int]()
	for i := 1; i <= 5; i++ {
		v := i
		s.Set(EntityID(i), &v)
	}
	visited := 0
	s.Range(func(id EntityID, _ *int) bool {
		visited++
		if id == 2 {
			s.Remove(3)
			extra := 6
			s.Set(6, &extra)
		}
		return id != 4
	})
	// 1, 2, (3 removed), 4 stops
	require.Equal(t, 3, visited)
	require.True(t, s.Has(6))
}
