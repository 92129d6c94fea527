package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSpawnList(t *testing.T) {
	l, err := parseSpawnList([]byte(`
spawns:
  - object_type: 1
    x: 4.5
    y: 64
    z: -2
    behavior: spin
  - kind: physics
    object_type: 10
    x: 0
    y: 70
    z: 0
    velocity: [0.1, 0, -0.2]
    metadata: "0001"
    broadcast_metadata: true
    count: 3
    spread: 2
`))
	require.NoError(t, err)
	require.Equal(t, 4, l.Count())

	es := l.Entries()
	require.Len(t, es, 2)
	require.Equal(t, "generic", es[0].Kind)
	require.Equal(t, 1, es[0].Count)
	require.Equal(t, "spin", es[0].Behavior)
	require.Nil(t, es[0].MetadataBytes())

	require.Equal(t, "physics", es[1].Kind)
	require.Equal(t, [3]float64{0.1, 0, -0.2}, es[1].Velocity)
	require.Equal(t, []byte{0x00, 0x01}, es[1].MetadataBytes())
	require.True(t, es[1].Broadcast)
}

func TestParseSpawnListRejects(t *testing.T) {
	_, err := parseSpawnList([]byte("spawns:\n  - kind: player\n"))
	require.ErrorContains(t, err, "cannot be spawned")

	_, err = parseSpawnList([]byte("spawns:\n  - metadata: zz\n"))
	require.ErrorContains(t, err, "metadata")

	_, err = parseSpawnList([]byte("spawns: [1, 2"))
	require.Error(t, err)
}

func TestShippedSpawnList(t *testing.T) {
	l, err := LoadSpawnList(filepath.Join("..", "..", "data", "yaml", "spawn_list.yaml"))
	require.NoError(t, err)
	require.NotZero(t, l.Count())
}

func TestLoadSpawnListMissing(t *testing.T) {
	_, err := LoadSpawnList(filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
