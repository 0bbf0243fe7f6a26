package world

import (
	"testing"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

func TestInsertGetRemove(t *testing.T) {
	w := New(0)
	key := spatial.NewMortonKey(0, 0, 0)
	c := chunkstore.NewChunk0(key)

	if _, ok := w.Get(key); ok {
		t.Fatalf("expected absent before insert")
	}
	w.Insert(c)
	got, ok := w.Get(key)
	if !ok || !got.Cmp(c) {
		t.Fatalf("Get after Insert: ok=%v got=%+v", ok, got)
	}
	if !w.Remove(key) {
		t.Fatalf("Remove should report true")
	}
	if w.Remove(key) {
		t.Fatalf("Remove should be idempotent")
	}
}

func TestGetOpt(t *testing.T) {
	w := New(0)
	key := spatial.NewMortonKey(1, 2, 3)
	def := chunkstore.NewChunk0(key)
	if got := w.GetOpt(key, def); !got.Cmp(def) {
		t.Fatalf("GetOpt should fall back to default when absent")
	}
}

func TestSingleBitvoxelRoundTrip(t *testing.T) {
	w := New(0)
	key := spatial.NewMortonKey(0, 0, 0)
	c := chunkstore.NewChunk0(key)
	target := chunkstore.NewVoxelIndex(1, 1, 1, 1, 1, 1)
	c.SetBitVoxel(target)
	w.Insert(c)

	got, _ := w.Get(key)
	if !got.GetBitVoxel(target) {
		t.Fatalf("target bitvoxel should read as set")
	}
	if got.GetBitVoxel(chunkstore.NewVoxelIndex(0, 0, 0, 0, 0, 0)) {
		t.Fatalf("unrelated bitvoxel should read as unset")
	}
	if got.Length() != 1 {
		t.Fatalf("chunk length=%d want 1", got.Length())
	}
}

func TestLenAndRange(t *testing.T) {
	w := New(0)
	w.Insert(chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0)))
	w.Insert(chunkstore.NewChunk0(spatial.NewMortonKey(1, 0, 0)))
	w.Insert(chunkstore.NewChunk0(spatial.NewMortonKey(0, 1, 0)))

	if w.Len() != 3 {
		t.Fatalf("Len()=%d want 3", w.Len())
	}

	seen := map[uint32]bool{}
	w.Range(func(c chunkstore.Chunk) bool {
		seen[c.Key().Key()] = true
		return true
	})
	if len(seen) != 3 {
		t.Fatalf("Range visited %d chunks, want 3", len(seen))
	}

	visited := 0
	w.Range(func(c chunkstore.Chunk) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("Range should stop after the first false, visited=%d", visited)
	}
}

func TestRaycasterBoundToWorld(t *testing.T) {
	w := New(0)
	key := spatial.NewMortonKey(0, 0, 0)
	c := chunkstore.NewChunk0(key)
	c.SetBitVoxel(chunkstore.NewVoxelIndex(1, 1, 1, 1, 1, 1))
	w.Insert(c)

	hit, ok := w.Raycaster().Cast(-16, 5, 5, 16, 5, 5)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !hit.Voxel.Cmp(chunkstore.NewVoxelIndex(1, 1, 1, 1, 1, 1)) {
		t.Fatalf("hit voxel=%+v want (1,1,1,1,1,1)", hit.Voxel)
	}
}
