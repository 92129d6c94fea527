package event

import "github.com/blockgo/server/internal/core/ecs"

// Lifecycle event types. Position is carried as block coordinates for logs
// and the journal; the live state stays in the world package.

type EntitySpawned struct {
	EntityID ecs.EntityID
	Kind     string
	X, Y, Z  int32
}

type EntityDespawned struct {
	EntityID ecs.EntityID
	Kind     string
}

type ClientJoined struct {
	SessionID   uint64
	SessionUUID string
	Name        string
	EntityID    ecs.EntityID
}

type ClientLeft struct {
	SessionID   uint64
	SessionUUID string
	Name        string
	EntityID    ecs.EntityID
}
