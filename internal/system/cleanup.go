package system

import (
	"time"

	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/world"
)

// DespawnSystem flushes the deferred entity despawn queue at tick end.
// Phase 6 (Cleanup).
type DespawnSystem struct {
	registry *world.Registry
}

func NewDespawnSystem(reg *world.Registry) *DespawnSystem {
	return &DespawnSystem{registry: reg}
}

func (s *DespawnSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *DespawnSystem) Update(_ time.Duration) {
	s.registry.FlushDespawns()
}
