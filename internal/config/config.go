// Package config loads the engine's tunables from YAML and validates
// renderer-supplied LUT assets against a JSON Schema before the engine
// trusts their shape.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds the knobs that govern a running world: the hash grid's
// bucket count, the persistence cadence, and the identity the world
// reports to observers.
type Engine struct {
	WorldID           string `yaml:"world_id"`
	HashGridBuckets   int    `yaml:"hash_grid_buckets"`
	SnapshotEveryTick uint64 `yaml:"snapshot_every_tick"`
	SnapshotDir       string `yaml:"snapshot_dir"`
	IndexDBPath       string `yaml:"index_db_path"`
	ObserverAddr      string `yaml:"observer_addr"`
}

// Default returns the configuration used when no config file is given.
func Default() Engine {
	return Engine{
		WorldID:           "default",
		HashGridBuckets:   1024,
		SnapshotEveryTick: 6000,
		SnapshotDir:       "data/snapshots",
		IndexDBPath:       "data/index.db",
		ObserverAddr:      ":7777",
	}
}

// Load reads and parses an Engine config from path, starting from
// Default so a partial file only overrides the fields it sets.
func Load(path string) (Engine, error) {
	e := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return e, fmt.Errorf("config: %s: %w", path, err)
	}
	return e, nil
}
