package chunkstore

import "github.com/voxelcore/voxelengine/internal/voxel/spatial"

var zeroChunk = NewChunk0(spatial.MortonKey{})

// ZeroChunk returns the process-wide, read-only all-zero chunk the face
// solver substitutes for a missing neighbor (see spec §4.9 step 3): an
// absent neighbor is treated as empty, not as "all faces occluded",
// because that's what renders chunk-edge faces before the neighbor loads.
// It is safe to alias across calls and chunks; callers must never mutate it.
func ZeroChunk() Chunk { return zeroChunk }
