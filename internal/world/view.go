package world

import (
	"sort"

	"github.com/blockgo/server/internal/core/ecs"
	"github.com/blockgo/server/internal/protocol"
)

// Conn is the outbound side of a client connection. Send must preserve call
// order; IsClosed may flip from any goroutine.
type Conn interface {
	Send(data []byte)
	IsClosed() bool
}

// ClientView is one connection's picture of the world: the entity it
// controls, its view radius in chunks and the ids it has been told about.
// The known set is mutated only by the visibility synchronizer and by
// disconnect cleanup.
// Accessed only from the game loop goroutine.
type ClientView struct {
	SessionID uint64
	Radius    int

	conn   Conn
	entity *Entity
	known  map[ecs.EntityID]struct{}
}

func NewClientView(sessionID uint64, conn Conn, radius int) *ClientView {
	return &ClientView{
		SessionID: sessionID,
		Radius:    radius,
		conn:      conn,
		known:     make(map[ecs.EntityID]struct{}),
	}
}

// Bind makes e the controlled entity of this view.
func (v *ClientView) Bind(e *Entity) {
	v.entity = e
	e.Client = v
}

// Entity returns the controlled entity, nil before join.
func (v *ClientView) Entity() *Entity { return v.entity }

// Connected reports whether messages can still be delivered.
func (v *ClientView) Connected() bool {
	return v.conn != nil && !v.conn.IsClosed()
}

// Enqueue marshals m and hands it to the connection. Messages for a
// disconnected client are dropped; the return value says whether m was sent.
func (v *ClientView) Enqueue(m protocol.Message) bool {
	if !v.Connected() {
		return false
	}
	v.conn.Send(protocol.Marshal(m))
	return true
}

func (v *ClientView) Knows(id ecs.EntityID) bool {
	_, ok := v.known[id]
	return ok
}

// Remember adds id to the known set and reports whether it was new.
func (v *ClientView) Remember(id ecs.EntityID) bool {
	if _, ok := v.known[id]; ok {
		return false
	}
	v.known[id] = struct{}{}
	return true
}

// Forget removes id from the known set and reports whether it was present.
func (v *ClientView) Forget(id ecs.EntityID) bool {
	if _, ok := v.known[id]; !ok {
		return false
	}
	delete(v.known, id)
	return true
}

func (v *ClientView) KnownCount() int { return len(v.known) }

// Known returns a sorted snapshot of the known ids.
func (v *ClientView) Known() []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(v.known))
	for id := range v.known {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reset forgets everything without notifying the client.
func (v *ClientView) Reset() {
	clear(v.known)
}
