package ecs

import "fmt"

// EntityID is the wire identity of a world entity. Ids are assigned from a
// monotonic counter and are never handed out twice, so a stale id held by a
// lagging client can never alias a newer entity.
type EntityID int32

func (id EntityID) IsZero() bool { return id == 0 }

func (id EntityID) String() string { return fmt.Sprintf("#%d", int32(id)) }

// IDAllocator hands out entity ids. There is no free list: despawned ids are
// retired for the lifetime of the process.
// Accessed only from the game loop goroutine.
type IDAllocator struct {
	next EntityID
}

// NewIDAllocator returns an allocator whose first id is start (clamped to 1,
// zero is reserved as "unassigned").
func NewIDAllocator(start EntityID) *IDAllocator {
	if start < 1 {
		start = 1
	}
	return &IDAllocator{next: start}
}

// Next returns a fresh id. Exhausting the int32 space is treated as fatal.
func (a *IDAllocator) Next() EntityID {
	id := a.next
	if id <= 0 {
		panic("ecs: entity id space exhausted")
	}
	a.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (a *IDAllocator) Peek() EntityID { return a.next }
