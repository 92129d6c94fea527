package system

import (
	"math/bits"
	"time"

	"github.com/blockgo/server/internal/core/event"
	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/protocol"
	"github.com/blockgo/server/internal/world"
	"go.uber.org/zap"
)

// VisibilitySystem keeps every client's known set in step with the registry.
// Property changes are mirrored synchronously to the views that already know
// the entity; full view refreshes (spawn/destroy diffing) are deferred to
// PostUpdate and coalesced per view.
// Phase 3 (PostUpdate).
type VisibilitySystem struct {
	registry   *world.Registry
	clients    *world.Clients
	chunkDepth int
	chunkShift uint

	dirty    []*world.ClientView
	dirtySet map[*world.ClientView]struct{}

	log *zap.Logger
}

// NewVisibilitySystem subscribes to the registry's property bus and installs
// itself as the registry's view remover. chunkDepth must be a power of two.
func NewVisibilitySystem(reg *world.Registry, clients *world.Clients, chunkDepth int, log *zap.Logger) *VisibilitySystem {
	if chunkDepth <= 0 || chunkDepth&(chunkDepth-1) != 0 {
		panic("visibility: chunk depth must be a power of two")
	}
	s := &VisibilitySystem{
		registry:   reg,
		clients:    clients,
		chunkDepth: chunkDepth,
		chunkShift: uint(bits.TrailingZeros(uint(chunkDepth))),
		dirtySet:   make(map[*world.ClientView]struct{}),
		log:        log,
	}
	reg.Properties().Subscribe(s.OnPropertyChanged)
	reg.SetViewRemover(s)
	return s
}

func (s *VisibilitySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *VisibilitySystem) Update(_ time.Duration) {
	if len(s.dirty) == 0 {
		return
	}
	queue := s.dirty
	s.dirty = nil
	clear(s.dirtySet)

	for _, v := range queue {
		// Views that left between MarkDirty and now are stale.
		if !s.clients.Contains(v) {
			continue
		}
		s.RefreshView(v)
	}
}

// MarkDirty schedules a full refresh of v for the next PostUpdate. Repeated
// marks within a tick collapse into one refresh.
func (s *VisibilitySystem) MarkDirty(v *world.ClientView) {
	if v == nil {
		return
	}
	if _, ok := s.dirtySet[v]; ok {
		return
	}
	s.dirtySet[v] = struct{}{}
	s.dirty = append(s.dirty, v)
}

// DirtyCount is the number of views waiting for a refresh.
func (s *VisibilitySystem) DirtyCount() int { return len(s.dirty) }

// OnPropertyChanged is the property bus subscriber.
func (s *VisibilitySystem) OnPropertyChanged(e *world.Entity, prop event.Property) {
	switch prop {
	case event.PropPosition, event.PropYaw, event.PropPitch:
		if prop == event.PropPosition && e.IsPlayer() && e.Client != nil {
			if e.PreviousPosition().Chunk(s.chunkShift) != e.Position().Chunk(s.chunkShift) {
				s.MarkDirty(e.Client)
			}
		}
		s.broadcast(e, teleportMessage(e))
	case event.PropMetadata:
		if !e.BroadcastMetadata {
			return
		}
		s.broadcast(e, protocol.Metadata{EntityID: e.ID, Blob: e.Metadata()})
	}
}

// broadcast sends m to every connected view, other than e's own, that knows e.
func (s *VisibilitySystem) broadcast(e *world.Entity, m protocol.Message) {
	s.clients.Each(func(v *world.ClientView) {
		if v == e.Client || !v.Knows(e.ID) {
			return
		}
		v.Enqueue(m)
	})
}

// RefreshView diffs v's known set against the entities within its radius.
func (s *VisibilitySystem) RefreshView(v *world.ClientView) {
	self := v.Entity()
	if self == nil || !v.Connected() {
		return
	}
	center := self.Position()
	threshold := float64(v.Radius * s.chunkDepth)

	for _, id := range v.Known() {
		other := s.registry.Get(id)
		if other == nil {
			s.log.Warn("view knows unregistered entity",
				zap.Uint64("session", v.SessionID),
				zap.Stringer("entity", id),
			)
			v.Forget(id)
			v.Enqueue(protocol.Destroy{EntityID: id})
			continue
		}
		if other.Position().DistanceTo(center) <= threshold {
			continue
		}
		v.Forget(id)
		v.Enqueue(protocol.Destroy{EntityID: id})
		if ov := other.Client; ov != nil && ov.Forget(self.ID) {
			ov.Enqueue(protocol.Destroy{EntityID: self.ID})
		}
	}

	s.registry.InRange(center, threshold, func(other *world.Entity) {
		if other == self || !v.Remember(other.ID) {
			return
		}
		v.Enqueue(spawnMessage(other))
		if other.HasVelocity() {
			vel := other.Velocity
			v.Enqueue(protocol.NewVelocity(other.ID, vel.X, vel.Y, vel.Z))
		}
		if ov := other.Client; ov != nil && ov.Connected() && ov.Remember(self.ID) {
			ov.Enqueue(spawnMessage(self))
		}
	})
}

// RemoveFromAllViews sends a destroy for e to every view that knows it.
// Disconnected views forget e without a message.
func (s *VisibilitySystem) RemoveFromAllViews(e *world.Entity) {
	s.clients.Each(func(v *world.ClientView) {
		if v.Forget(e.ID) {
			v.Enqueue(protocol.Destroy{EntityID: e.ID})
		}
	})
}

func spawnMessage(e *world.Entity) protocol.Message {
	p := e.Position()
	if e.IsPlayer() {
		return protocol.SpawnPlayer{
			EntityID: e.ID,
			Name:     e.Name,
			X:        p.X,
			Y:        p.Y,
			Z:        p.Z,
			Yaw:      protocol.AngleByte(e.Yaw()),
			Pitch:    protocol.AngleByte(e.Pitch()),
			HeldItem: e.HeldItem,
		}
	}
	return protocol.SpawnObject{
		EntityID:   e.ID,
		ObjectType: e.ObjectType,
		X:          p.X,
		Y:          p.Y,
		Z:          p.Z,
	}
}

func teleportMessage(e *world.Entity) protocol.Teleport {
	p := e.Position()
	return protocol.Teleport{
		EntityID: e.ID,
		X:        p.X,
		Y:        p.Y,
		Z:        p.Z,
		Yaw:      protocol.AngleByte(e.Yaw()),
		Pitch:    protocol.AngleByte(e.Pitch()),
	}
}
