// Package worldindex decomposes a 3D world coordinate into the chunk that
// contains it plus the voxel/bitvoxel within that chunk.
package worldindex

import (
	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

// chunkDimVoxels is C, the chunk's extent in voxels along one axis.
const chunkDimVoxels = 4

// chunkDimBitvoxels is W = C*C, the chunk's extent in bitvoxels along one
// axis (the world's logical per-chunk extent).
const chunkDimBitvoxels = chunkDimVoxels * chunkDimVoxels

// WorldIndex decomposes a 3D world coordinate into the Morton key of the
// chunk that contains it and the VoxelIndex of the voxel/bitvoxel inside
// that chunk.
type WorldIndex struct {
	ChunkKey spatial.MortonKey
	Voxel    chunkstore.VoxelIndex
}

// WorldIndexFrom truncates each axis to an integer and decomposes it per
// spec §3: chunk coord = floor(w/W), voxel coord = floor((w mod W)/C),
// bitvoxel coord = w mod C, with W=16 and C=4. Negative coordinates wrap
// through the same floor-division arithmetic that feeds MortonKey's and
// VoxelIndex's own axis wrap, so there is no separate negative-coordinate
// special case.
func WorldIndexFrom(wx, wy, wz float64) WorldIndex {
	return worldIndexFromInts(int32(wx), int32(wy), int32(wz))
}

func worldIndexFromInts(x, y, z int32) WorldIndex {
	const c = int32(chunkDimVoxels)
	const w = int32(chunkDimBitvoxels)

	cx, cy, cz := floorDiv(x, w), floorDiv(y, w), floorDiv(z, w)
	lx, ly, lz := floorMod(x, w), floorMod(y, w), floorMod(z, w)
	vx, vy, vz := floorDiv(lx, c), floorDiv(ly, c), floorDiv(lz, c)
	bx, by, bz := floorMod(lx, c), floorMod(ly, c), floorMod(lz, c)

	return WorldIndex{
		ChunkKey: spatial.NewMortonKey(cx, cy, cz),
		Voxel:    chunkstore.NewVoxelIndex(vx, vy, vz, bx, by, bz),
	}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int32) int32 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
