// Package geometry derives per-bitvoxel face-visibility masks from a
// chunk and its neighbors, and expands those masks into renderer-ready
// triangle index buffers using caller-supplied lookup tables.
package geometry

import (
	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

// MaskBuffer is the 4096-byte per-bitvoxel face-visibility mask buffer.
// Entry i is the 6-bit mask for the bitvoxel whose VoxelIndex.Key()==i;
// bit 0=+x, 1=-x, 2=+y, 3=-y, 4=+z, 5=-z. A zero entry means the
// bitvoxel is unset or fully occluded.
type MaskBuffer [4096]byte

// NeighborLookup is the read-only chunk-store view the face solver needs
// to read across chunk boundaries. world.World satisfies it.
type NeighborLookup interface {
	GetChunk(key spatial.MortonKey) (chunkstore.Chunk, bool)
}

// Solve computes chunk's face-visibility mask buffer: for every set
// bitvoxel, each of its six faces is marked visible iff the bitvoxel
// adjacent in that direction — possibly across a voxel or chunk boundary
// — is unset. A missing neighbor chunk is treated as entirely empty
// rather than fully occluding, so faces at the edge of a not-yet-loaded
// chunk still render.
func Solve(chunk chunkstore.Chunk, world NeighborLookup) MaskBuffer {
	var out MaskBuffer
	if chunk.Length() == 0 {
		return out
	}

	key := chunk.Key()
	xp := neighborOrZero(world, key.IncX())
	xn := neighborOrZero(world, key.DecX())
	yp := neighborOrZero(world, key.IncY())
	yn := neighborOrZero(world, key.DecY())
	zp := neighborOrZero(world, key.IncZ())
	zn := neighborOrZero(world, key.DecZ())

	for i := uint32(0); i < 4096; i++ {
		idx := chunkstore.VoxelIndexFromKeys(i>>6, i&0x3F)
		if !chunk.GetBitVoxel(idx) {
			continue
		}

		var mask byte
		if !neighborState(idx, 1, chunkstore.VoxelIndex.BX, chunkstore.VoxelIndex.WithBX,
			chunkstore.VoxelIndex.VX, chunkstore.VoxelIndex.WithVX, chunk, xp) {
			mask |= 1 << 0
		}
		if !neighborState(idx, -1, chunkstore.VoxelIndex.BX, chunkstore.VoxelIndex.WithBX,
			chunkstore.VoxelIndex.VX, chunkstore.VoxelIndex.WithVX, chunk, xn) {
			mask |= 1 << 1
		}
		if !neighborState(idx, 1, chunkstore.VoxelIndex.BY, chunkstore.VoxelIndex.WithBY,
			chunkstore.VoxelIndex.VY, chunkstore.VoxelIndex.WithVY, chunk, yp) {
			mask |= 1 << 2
		}
		if !neighborState(idx, -1, chunkstore.VoxelIndex.BY, chunkstore.VoxelIndex.WithBY,
			chunkstore.VoxelIndex.VY, chunkstore.VoxelIndex.WithVY, chunk, yn) {
			mask |= 1 << 3
		}
		if !neighborState(idx, 1, chunkstore.VoxelIndex.BZ, chunkstore.VoxelIndex.WithBZ,
			chunkstore.VoxelIndex.VZ, chunkstore.VoxelIndex.WithVZ, chunk, zp) {
			mask |= 1 << 4
		}
		if !neighborState(idx, -1, chunkstore.VoxelIndex.BZ, chunkstore.VoxelIndex.WithBZ,
			chunkstore.VoxelIndex.VZ, chunkstore.VoxelIndex.WithVZ, chunk, zn) {
			mask |= 1 << 5
		}
		out[i] = mask
	}
	return out
}

func neighborOrZero(world NeighborLookup, key spatial.MortonKey) chunkstore.Chunk {
	if c, ok := world.GetChunk(key); ok {
		return c
	}
	return chunkstore.ZeroChunk()
}

// neighborState reads the state of the bitvoxel adjacent to idx along one
// axis, advancing the bitvoxel coordinate by delta and, on wrap,
// advancing the voxel coordinate within the same chunk; a further wrap at
// the voxel boundary switches to acrossChunk. getB/withB and getV/withV
// are VoxelIndex's own accessor/wither pairs for the axis in question
// (e.g. BX/WithBX and VX/WithVX for the x axis), passed as method
// expressions so this one function serves all six directions.
func neighborState(idx chunkstore.VoxelIndex, delta int32,
	getB func(chunkstore.VoxelIndex) uint32, withB func(chunkstore.VoxelIndex, int32) chunkstore.VoxelIndex,
	getV func(chunkstore.VoxelIndex) uint32, withV func(chunkstore.VoxelIndex, int32) chunkstore.VoxelIndex,
	sameChunk, acrossChunk chunkstore.Chunk) bool {

	b := int32(getB(idx)) + delta
	if b < 0 || b > 3 {
		nb := wrapComponent(b)
		v := int32(getV(idx)) + delta
		if v < 0 || v > 3 {
			nv := wrapComponent(v)
			return acrossChunk.GetBitVoxel(withV(withB(idx, nb), nv))
		}
		return sameChunk.GetBitVoxel(withV(withB(idx, nb), v))
	}
	return sameChunk.GetBitVoxel(withB(idx, b))
}

func wrapComponent(v int32) int32 {
	switch {
	case v < 0:
		return v + 4
	case v > 3:
		return v - 4
	default:
		return v
	}
}
