package main

import (
	"path/filepath"
	"testing"

	"github.com/blockgo/server/internal/data"
	"github.com/blockgo/server/internal/scripting"
	"github.com/blockgo/server/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSpawnEntitiesFromShippedTables(t *testing.T) {
	eng, err := scripting.NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer eng.Close()
	list, err := data.LoadSpawnList(filepath.Join("..", "..", "data", "yaml", "spawn_list.yaml"))
	require.NoError(t, err)

	reg := world.NewRegistry(nil, zap.NewNop())
	n := spawnEntities(reg, list, eng, zap.NewNop())
	require.Equal(t, list.Count(), n)
	require.Equal(t, n, reg.Len())

	physics := 0
	reg.Each(func(e *world.Entity) {
		require.False(t, e.IsPlayer())
		if e.HasVelocity() {
			physics++
			require.NotNil(t, e.Behavior)
		}
	})
	require.Equal(t, 4, physics)

	require.NotPanics(t, reg.Tick)
}
