package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("world_id: alpha\nhash_grid_buckets: 4096\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.WorldID != "alpha" {
		t.Fatalf("WorldID=%q want alpha", e.WorldID)
	}
	if e.HashGridBuckets != 4096 {
		t.Fatalf("HashGridBuckets=%d want 4096", e.HashGridBuckets)
	}
	// Fields the file didn't set should keep their Default() value.
	if e.SnapshotEveryTick != Default().SnapshotEveryTick {
		t.Fatalf("SnapshotEveryTick=%d want default %d", e.SnapshotEveryTick, Default().SnapshotEveryTick)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
