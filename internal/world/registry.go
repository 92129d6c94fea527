package world

import (
	"fmt"

	"github.com/blockgo/server/internal/core/ecs"
	"github.com/blockgo/server/internal/core/event"
	"go.uber.org/zap"
)

// ViewRemover takes a despawning entity out of every client view. The
// visibility synchronizer implements it.
type ViewRemover interface {
	RemoveFromAllViews(e *Entity)
}

// Physics is the motion collaborator. The registry only tells it when a
// physics-driven entity goes away.
type Physics interface {
	Remove(e *Entity)
}

// Registry owns the live entity set, assigns ids, runs per-tick behaviors
// and finalizes despawns.
// Single-goroutine access only (game loop).
type Registry struct {
	ids      *ecs.IDAllocator
	live     *ecs.PtrComponentStore[Entity]
	despawns *DespawnScheduler
	props    *event.PropertyBus[*Entity]

	lifecycle *event.Bus
	views     ViewRemover
	physics   Physics
	log       *zap.Logger
}

// NewRegistry creates an empty registry. lifecycle may be nil.
func NewRegistry(lifecycle *event.Bus, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		ids:       ecs.NewIDAllocator(1),
		live:      ecs.NewPtrComponentStore[Entity](),
		despawns:  NewDespawnScheduler(),
		props:     event.NewPropertyBus[*Entity](),
		lifecycle: lifecycle,
		log:       log,
	}
}

// Properties is the bus every registered entity publishes its changes on.
func (r *Registry) Properties() *event.PropertyBus[*Entity] { return r.props }

func (r *Registry) SetViewRemover(v ViewRemover) { r.views = v }

func (r *Registry) SetPhysics(p Physics) { r.physics = p }

// Add assigns e the next id and makes it live. Registering an entity twice
// (or reviving a despawned one) is an invariant violation.
func (r *Registry) Add(e *Entity) ecs.EntityID {
	if e.ID != 0 {
		panic(fmt.Sprintf("world: entity %s registered twice", e.ID))
	}
	id := r.ids.Next()
	if r.live.Has(id) {
		panic(fmt.Sprintf("world: duplicate entity id %s", id))
	}
	e.ID = id
	e.bus = r.props
	r.live.Set(id, e)

	b := e.pos.Block()
	event.Emit(r.lifecycle, event.EntitySpawned{EntityID: id, Kind: e.Kind.String(), X: b.X, Y: b.Y, Z: b.Z})
	r.log.Debug("entity added", zap.Stringer("id", id), zap.Stringer("kind", e.Kind))
	return id
}

// Get returns the registered entity for id, nil once finalized.
func (r *Registry) Get(id ecs.EntityID) *Entity {
	e, _ := r.live.Get(id)
	return e
}

// Len is the number of registered entities, pending despawns included.
func (r *Registry) Len() int { return r.live.Len() }

// Each visits every registered entity in insertion order.
func (r *Registry) Each(fn func(*Entity)) {
	r.live.Each(func(_ ecs.EntityID, e *Entity) { fn(e) })
}

// Despawn requests removal of e at the next flush. Repeated requests and
// requests for unknown entities are no-ops.
func (r *Registry) Despawn(e *Entity) {
	if e == nil || e.pending || e.finalized || !r.live.Has(e.ID) {
		return
	}
	e.pending = true
	r.despawns.Push(e)
}

// PendingDespawns is the number of entities waiting for FlushDespawns.
func (r *Registry) PendingDespawns() int { return r.despawns.Len() }

// UpdateEntities runs the behavior of every live entity that is not waiting
// to despawn. Entities added during the pass first update next tick.
func (r *Registry) UpdateEntities() {
	r.live.Each(func(_ ecs.EntityID, e *Entity) {
		if e.pending || e.Behavior == nil {
			return
		}
		e.Behavior.Update(e, r)
	})
}

// Tick runs entity behaviors and then flushes despawns.
func (r *Registry) Tick() {
	r.UpdateEntities()
	r.FlushDespawns()
}

// FlushDespawns finalizes every queued despawn. Client views are cleaned
// before the entity leaves the live set, so no view ever holds an id the
// registry no longer knows.
func (r *Registry) FlushDespawns() {
	r.despawns.Drain(func(e *Entity) {
		if e.HasVelocity() && r.physics != nil {
			r.physics.Remove(e)
		}
		if r.views != nil {
			r.views.RemoveFromAllViews(e)
		}
		r.live.Remove(e.ID)
		e.finalized = true
		e.bus = nil

		event.Emit(r.lifecycle, event.EntityDespawned{EntityID: e.ID, Kind: e.Kind.String()})
		r.log.Debug("entity despawned", zap.Stringer("id", e.ID), zap.Stringer("kind", e.Kind))
	})
}

// QueryOccupancy reports whether any registered entity stands in the block
// containing p, or stands one block below it (the entity's head occupies p).
// Used for block placement checks.
func (r *Registry) QueryOccupancy(p Vec3) bool {
	target := p.Block()
	found := false
	r.live.Range(func(_ ecs.EntityID, e *Entity) bool {
		b := e.pos.Block()
		if b == target || b.Up() == target {
			found = true
			return false
		}
		return true
	})
	return found
}

// InRange visits every live entity not pending despawn whose distance to
// center is at most threshold. Linear scan.
func (r *Registry) InRange(center Vec3, threshold float64, fn func(*Entity)) {
	r.live.Each(func(_ ecs.EntityID, e *Entity) {
		if e.pending {
			return
		}
		if e.pos.DistanceTo(center) <= threshold {
			fn(e)
		}
	})
}
