package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Network   NetworkConfig   `toml:"network"`
	World     WorldConfig     `toml:"world"`
	Scripting ScriptingConfig `toml:"scripting"`
	Data      DataConfig      `toml:"data"`
	Journal   JournalConfig   `toml:"journal"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	Seed      int64  `toml:"seed"` // sent in the login response, terrain is client side
	StartTime int64  // set at boot, not from config
}

// DatabaseConfig points at the lifecycle journal. An empty DSN disables it.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type NetworkConfig struct {
	BindAddress       string        `toml:"bind_address"`
	TickRate          time.Duration `toml:"tick_rate"`
	InQueueSize       int           `toml:"in_queue_size"`
	OutQueueSize      int           `toml:"out_queue_size"`
	MaxPacketsPerTick int           `toml:"max_packets_per_tick"`
	PacketsPerSecond  int           `toml:"packets_per_second"` // 0 = unlimited
	WriteTimeout      time.Duration `toml:"write_timeout"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
}

type WorldConfig struct {
	ChunkDepth    int        `toml:"chunk_depth"`    // blocks per chunk side, power of two
	DefaultRadius int        `toml:"default_radius"` // view radius in chunks
	MinRadius     int        `toml:"min_radius"`
	MaxRadius     int        `toml:"max_radius"`
	Spawn         [3]float64 `toml:"spawn"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type DataConfig struct {
	SpawnList string `toml:"spawn_list"`
}

type JournalConfig struct {
	FlushInterval int `toml:"flush_interval"` // ticks between batch writes
	MaxBatch      int `toml:"max_batch"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration used when no file overrides it.
func Default() *Config {
	return defaults()
}

// Validate rejects settings the game loop cannot run with.
func (c *Config) Validate() error {
	w := c.World
	if w.ChunkDepth <= 0 || w.ChunkDepth&(w.ChunkDepth-1) != 0 {
		return fmt.Errorf("world.chunk_depth %d is not a power of two", w.ChunkDepth)
	}
	if w.MinRadius < 1 || w.MinRadius > w.MaxRadius {
		return fmt.Errorf("world radius bounds [%d, %d] are invalid", w.MinRadius, w.MaxRadius)
	}
	if w.DefaultRadius < w.MinRadius || w.DefaultRadius > w.MaxRadius {
		return fmt.Errorf("world.default_radius %d outside [%d, %d]", w.DefaultRadius, w.MinRadius, w.MaxRadius)
	}
	if c.Network.TickRate <= 0 {
		return errors.New("network.tick_rate must be positive")
	}
	if c.Network.MaxPacketsPerTick <= 0 {
		return errors.New("network.max_packets_per_tick must be positive")
	}
	if c.Journal.FlushInterval <= 0 {
		return errors.New("journal.flush_interval must be positive")
	}
	return nil
}

// ClampRadius limits a client-requested view radius to the configured bounds.
func (w WorldConfig) ClampRadius(r int) int {
	if r < w.MinRadius {
		return w.MinRadius
	}
	if r > w.MaxRadius {
		return w.MaxRadius
	}
	return r
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "blockgo",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Network: NetworkConfig{
			BindAddress:       "0.0.0.0:25565",
			TickRate:          50 * time.Millisecond,
			InQueueSize:       128,
			OutQueueSize:      512,
			MaxPacketsPerTick: 32,
			PacketsPerSecond:  0,
			WriteTimeout:      10 * time.Second,
			ReadTimeout:       60 * time.Second,
		},
		World: WorldConfig{
			ChunkDepth:    16,
			DefaultRadius: 5,
			MinRadius:     2,
			MaxRadius:     10,
			Spawn:         [3]float64{0, 64, 0},
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Data: DataConfig{
			SpawnList: "data/yaml/spawn_list.yaml",
		},
		Journal: JournalConfig{
			FlushInterval: 100,
			MaxBatch:      512,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
