package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
[server]
name = "test"

[world]
default_radius = 8

[network]
tick_rate = "100ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Server.Name)
	require.Equal(t, 8, cfg.World.DefaultRadius)
	require.Equal(t, 16, cfg.World.ChunkDepth)
	require.Equal(t, 100*time.Millisecond, cfg.Network.TickRate)
	require.Equal(t, "", cfg.Database.DSN)
	require.NotZero(t, cfg.Server.StartTime)
}

func TestLoadRejectsBadChunkDepth(t *testing.T) {
	path := writeConfig(t, "[world]\nchunk_depth = 12\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "power of two")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidateRadiusBounds(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.World.MinRadius = 12
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.World.DefaultRadius = 11
	require.Error(t, cfg.Validate())
}

func TestClampRadius(t *testing.T) {
	w := Default().World
	require.Equal(t, 2, w.ClampRadius(0))
	require.Equal(t, 7, w.ClampRadius(7))
	require.Equal(t, 10, w.ClampRadius(32))
}
