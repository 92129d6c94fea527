package world

// DespawnScheduler is the FIFO of entities waiting for the end-of-tick flush.
// Accessed only from the game loop goroutine.
type DespawnScheduler struct {
	queue []*Entity
	head  int
}

func NewDespawnScheduler() *DespawnScheduler {
	return &DespawnScheduler{queue: make([]*Entity, 0, 64)}
}

func (d *DespawnScheduler) Push(e *Entity) {
	d.queue = append(d.queue, e)
}

func (d *DespawnScheduler) Len() int {
	return len(d.queue) - d.head
}

// Drain pops entities in arrival order and hands each to fn. Entities pushed
// by fn are drained in the same call.
func (d *DespawnScheduler) Drain(fn func(*Entity)) {
	for d.head < len(d.queue) {
		e := d.queue[d.head]
		d.queue[d.head] = nil
		d.head++
		fn(e)
	}
	d.queue = d.queue[:0]
	d.head = 0
}
