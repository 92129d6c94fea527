package data

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnEntry defines a non-player entity created at boot.
type SpawnEntry struct {
	Kind       string     `yaml:"kind"` // generic or physics
	ObjectType byte       `yaml:"object_type"`
	X          float64    `yaml:"x"`
	Y          float64    `yaml:"y"`
	Z          float64    `yaml:"z"`
	Yaw        float32    `yaml:"yaw"`
	Pitch      float32    `yaml:"pitch"`
	Velocity   [3]float64 `yaml:"velocity"` // blocks/tick, physics only
	Behavior   string     `yaml:"behavior"` // lua behavior name, optional
	Metadata   string     `yaml:"metadata"` // hex-encoded metadata entries
	Broadcast  bool       `yaml:"broadcast_metadata"`
	Count      int        `yaml:"count"`
	Spread     float64    `yaml:"spread"` // random horizontal offset per copy

	metadata []byte
}

// MetadataBytes returns the decoded metadata blob.
func (e *SpawnEntry) MetadataBytes() []byte { return e.metadata }

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// SpawnList holds the boot-time spawn entries in file order.
type SpawnList struct {
	entries []SpawnEntry
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) (*SpawnList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	return parseSpawnList(data)
}

func parseSpawnList(data []byte) (*SpawnList, error) {
	var f spawnListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	for i := range f.Spawns {
		s := &f.Spawns[i]
		switch s.Kind {
		case "":
			s.Kind = "generic"
		case "generic", "physics":
		default:
			return nil, fmt.Errorf("spawn_list entry %d: kind %q cannot be spawned", i, s.Kind)
		}
		if s.Count <= 0 {
			s.Count = 1
		}
		if s.Spread < 0 {
			return nil, fmt.Errorf("spawn_list entry %d: negative spread", i)
		}
		if s.Metadata != "" {
			blob, err := hex.DecodeString(s.Metadata)
			if err != nil {
				return nil, fmt.Errorf("spawn_list entry %d: metadata: %w", i, err)
			}
			s.metadata = blob
		}
	}
	return &SpawnList{entries: f.Spawns}, nil
}

// Entries returns the entries in file order.
func (l *SpawnList) Entries() []SpawnEntry { return l.entries }

// Count is the total number of entities the list creates.
func (l *SpawnList) Count() int {
	n := 0
	for i := range l.entries {
		n += l.entries[i].Count
	}
	return n
}
