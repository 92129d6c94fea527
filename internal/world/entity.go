package world

import (
	"bytes"

	"github.com/blockgo/server/internal/core/ecs"
	"github.com/blockgo/server/internal/core/event"
)

// Kind is the closed set of entity variants the synchronizer distinguishes.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindPlayer
	KindPhysics
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPhysics:
		return "physics"
	default:
		return "generic"
	}
}

// ParseKind maps a table name back to a Kind. Unknown names are generic.
func ParseKind(s string) Kind {
	switch s {
	case "player":
		return KindPlayer
	case "physics":
		return KindPhysics
	default:
		return KindGeneric
	}
}

// Behavior is an entity's own per-tick update, run by Registry.UpdateEntities.
type Behavior interface {
	Update(e *Entity, r *Registry)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(e *Entity, r *Registry)

func (f BehaviorFunc) Update(e *Entity, r *Registry) { f(e, r) }

// Entity is a dynamic world object. Mutations of position, orientation and
// metadata go through the setters so the registry's PropertyBus sees them.
// Accessed only from the game loop goroutine.
type Entity struct {
	ID   ecs.EntityID
	Kind Kind

	Name       string // player display name
	ObjectType byte   // spawn payload for non-player entities
	HeldItem   int16

	// BroadcastMetadata opts the entity in to metadata propagation.
	BroadcastMetadata bool

	// Velocity is owned by the physics collaborator; only read here.
	Velocity Vec3

	Behavior Behavior

	// Client is the view of the connection controlling this entity
	// (players only).
	Client *ClientView

	pos      Vec3
	oldPos   Vec3
	yaw      float32
	pitch    float32
	metadata []byte

	pending   bool
	finalized bool

	bus *event.PropertyBus[*Entity]
}

// NewEntity creates an unregistered entity of the given kind.
func NewEntity(kind Kind, pos Vec3) *Entity {
	return &Entity{Kind: kind, pos: pos, oldPos: pos}
}

// NewPlayer creates an unregistered player entity controlled by view.
func NewPlayer(name string, pos Vec3, view *ClientView) *Entity {
	e := NewEntity(KindPlayer, pos)
	e.Name = name
	if view != nil {
		view.Bind(e)
	}
	return e
}

func (e *Entity) IsPlayer() bool    { return e.Kind == KindPlayer }
func (e *Entity) HasVelocity() bool { return e.Kind == KindPhysics }

func (e *Entity) Position() Vec3 { return e.pos }

// PreviousPosition is the position before the most recent SetPosition/Move.
func (e *Entity) PreviousPosition() Vec3 { return e.oldPos }

func (e *Entity) Yaw() float32   { return e.yaw }
func (e *Entity) Pitch() float32 { return e.pitch }

// Metadata returns the current metadata blob. Callers must not modify it.
func (e *Entity) Metadata() []byte { return e.metadata }

// PendingDespawn reports whether a despawn was requested and not yet flushed.
func (e *Entity) PendingDespawn() bool { return e.pending }

// Finalized reports whether the entity has left the registry for good.
func (e *Entity) Finalized() bool { return e.finalized }

// Alive is true between registration and despawn request.
func (e *Entity) Alive() bool { return e.ID != 0 && !e.pending && !e.finalized }

func (e *Entity) SetPosition(p Vec3) {
	if p == e.pos {
		return
	}
	e.oldPos = e.pos
	e.pos = p
	e.notify(event.PropPosition)
}

func (e *Entity) SetYaw(deg float32) {
	if deg == e.yaw {
		return
	}
	e.yaw = deg
	e.notify(event.PropYaw)
}

func (e *Entity) SetPitch(deg float32) {
	if deg == e.pitch {
		return
	}
	e.pitch = deg
	e.notify(event.PropPitch)
}

// Move sets position and orientation together and publishes a single
// notification: Position when the position changed, Yaw otherwise. A teleport
// carries both, so observers do not need one message per field.
func (e *Entity) Move(p Vec3, yaw, pitch float32) {
	moved := p != e.pos
	turned := yaw != e.yaw || pitch != e.pitch
	if !moved && !turned {
		return
	}
	if moved {
		e.oldPos = e.pos
		e.pos = p
	}
	e.yaw, e.pitch = yaw, pitch
	if moved {
		e.notify(event.PropPosition)
	} else {
		e.notify(event.PropYaw)
	}
}

// SetMetadata replaces the metadata blob. The slice is copied.
func (e *Entity) SetMetadata(blob []byte) {
	if bytes.Equal(blob, e.metadata) {
		return
	}
	e.metadata = append([]byte(nil), blob...)
	e.notify(event.PropMetadata)
}

func (e *Entity) notify(p event.Property) {
	if e.bus == nil || e.finalized {
		return
	}
	e.bus.Notify(e, p)
}
