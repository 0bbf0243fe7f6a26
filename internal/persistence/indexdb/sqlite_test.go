package indexdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

func openTestIndex(t *testing.T) *ChunkIndex {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func waitForKeys(t *testing.T, idx *ChunkIndex, worldID string, n int) []uint32 {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		keys, err := idx.ChunkKeys(worldID)
		if err != nil {
			t.Fatalf("ChunkKeys: %v", err)
		}
		if len(keys) >= n {
			return keys
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d chunk keys to be indexed", n)
	return nil
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected an error for an empty db path")
	}
}

func TestUpsertChunkIsVisibleAfterIndexing(t *testing.T) {
	idx := openTestIndex(t)

	c := chunkstore.NewChunk0(spatial.NewMortonKey(1, 2, 3))
	idx.UpsertChunk("w1", c)

	keys := waitForKeys(t, idx, "w1", 1)
	if keys[0] != c.Key().Key() {
		t.Fatalf("indexed key=%d want %d", keys[0], c.Key().Key())
	}
}

func TestUpsertChunkIsScopedPerWorld(t *testing.T) {
	idx := openTestIndex(t)

	idx.UpsertChunk("w1", chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0)))
	idx.UpsertChunk("w2", chunkstore.NewChunk0(spatial.NewMortonKey(1, 1, 1)))
	waitForKeys(t, idx, "w1", 1)
	waitForKeys(t, idx, "w2", 1)

	keys, err := idx.ChunkKeys("w1")
	if err != nil {
		t.Fatalf("ChunkKeys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("w1 should only see its own chunk, got %v", keys)
	}
}

func TestCloseIsIdempotentAndNilSafe(t *testing.T) {
	idx := openTestIndex(t)
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	var nilIdx *ChunkIndex
	if err := nilIdx.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
	nilIdx.UpsertChunk("w", chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0)))
}
