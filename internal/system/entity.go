package system

import (
	"time"

	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/world"
)

// EntitySystem runs every live entity's behavior. Phase 2 (Update).
type EntitySystem struct {
	registry *world.Registry
}

func NewEntitySystem(reg *world.Registry) *EntitySystem {
	return &EntitySystem{registry: reg}
}

func (s *EntitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EntitySystem) Update(_ time.Duration) {
	s.registry.UpdateEntities()
}
