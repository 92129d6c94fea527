package main

import (
	"math/rand"

	"github.com/blockgo/server/internal/data"
	"github.com/blockgo/server/internal/scripting"
	"github.com/blockgo/server/internal/world"
	"go.uber.org/zap"
)

// spawnEntities creates the boot-time entities from the spawn list and
// returns how many were registered. Entries with an unknown behavior still
// spawn, just without one.
func spawnEntities(reg *world.Registry, list *data.SpawnList, eng *scripting.Engine, log *zap.Logger) int {
	count := 0
	for _, s := range list.Entries() {
		for i := 0; i < s.Count; i++ {
			pos := world.Vec3{X: s.X, Y: s.Y, Z: s.Z}
			if s.Spread > 0 {
				pos.X += (rand.Float64()*2 - 1) * s.Spread
				pos.Z += (rand.Float64()*2 - 1) * s.Spread
			}
			e := world.NewEntity(world.ParseKind(s.Kind), pos)
			e.ObjectType = s.ObjectType
			e.BroadcastMetadata = s.Broadcast
			if e.HasVelocity() {
				e.Velocity = world.Vec3{X: s.Velocity[0], Y: s.Velocity[1], Z: s.Velocity[2]}
			}
			if s.Behavior != "" {
				b, err := eng.Behavior(s.Behavior)
				if err != nil {
					log.Warn("spawn entry behavior", zap.String("behavior", s.Behavior), zap.Error(err))
				} else {
					e.Behavior = b
				}
			}
			e.Move(pos, s.Yaw, s.Pitch)
			e.SetMetadata(s.MetadataBytes())
			reg.Add(e)
			count++
		}
	}
	return count
}
