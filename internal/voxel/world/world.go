// Package world owns the sparse hash grid of chunks and the raycaster
// bound to it; it is the single mutable root the rest of the engine reads
// from and writes to.
package world

import (
	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/hashgrid"
	"github.com/voxelcore/voxelengine/internal/voxel/raycast"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

// World owns a HashGrid of chunks keyed by Morton key, plus a raycaster
// bound to itself.
type World struct {
	grid *hashgrid.HashGrid[chunkstore.Chunk]
	rc   *raycast.Raycaster
}

// New creates an empty world. bucketCount is the hash grid's bucket
// count; bucketCount<1 falls back to hashgrid.DefaultBuckets.
func New(bucketCount int) *World {
	w := &World{grid: hashgrid.New[chunkstore.Chunk](bucketCount)}
	w.rc = raycast.New(w)
	return w
}

// Insert stores chunk under its own Morton key, overwriting silently if a
// chunk with that key already resides in the grid.
func (w *World) Insert(chunk chunkstore.Chunk) {
	w.grid.Set(chunk.Key(), chunk)
}

// Get returns the chunk at key, or ok=false if absent.
func (w *World) Get(key spatial.MortonKey) (chunkstore.Chunk, bool) {
	return w.grid.Get(key)
}

// GetChunk is the raycast.ChunkLookup implementation; it is identical to
// Get, named separately so the raycaster's dependency on World is
// expressed through a narrow interface rather than World's whole surface.
func (w *World) GetChunk(key spatial.MortonKey) (chunkstore.Chunk, bool) {
	return w.grid.Get(key)
}

// GetOpt returns the chunk at key, or def if absent.
func (w *World) GetOpt(key spatial.MortonKey, def chunkstore.Chunk) chunkstore.Chunk {
	if c, ok := w.grid.Get(key); ok {
		return c
	}
	return def
}

// Remove deletes the chunk at key. It is idempotent: removing an already-
// absent key returns false without effect.
func (w *World) Remove(key spatial.MortonKey) bool {
	return w.grid.Remove(key)
}

// Raycaster returns the world's bound raycaster.
func (w *World) Raycaster() *raycast.Raycaster {
	return w.rc
}

// Len returns the number of chunks currently resident in the world.
func (w *World) Len() int {
	return w.grid.Len()
}

// Range calls fn for every resident chunk, in unspecified order, stopping
// early if fn returns false. It is the enumeration primitive snapshot and
// observer code walks the world with.
func (w *World) Range(fn func(chunkstore.Chunk) bool) {
	w.grid.Range(func(_ uint32, c chunkstore.Chunk) bool {
		return fn(c)
	})
}
