// Package chunkstore implements the bit-packed storage substrate for a
// single chunk: the 12-bit VoxelIndex addressing scheme, the 4096-bit
// BVXLayer it addresses, and the four VoxelChunk metadata-width variants
// built on top of it.
package chunkstore

// VoxelIndex is a 12-bit composite address within a chunk: three 2-bit
// voxel coordinates (vx,vy,vz, each 0..3) selecting one of the chunk's 64
// voxels, and three 2-bit bitvoxel coordinates (bx,by,bz, each 0..3)
// selecting one of that voxel's 64 bitvoxels. Out-of-range components wrap
// modulo 4, so every VoxelIndex value is valid.
type VoxelIndex struct {
	vx, vy, vz uint32
	bx, by, bz uint32
}

func wrap4(v int32) uint32 {
	return uint32(((v % 4) + 4) % 4)
}

// NewVoxelIndex builds an index from six coordinates, wrapping each
// modulo 4.
func NewVoxelIndex(vx, vy, vz, bx, by, bz int32) VoxelIndex {
	return VoxelIndex{
		vx: wrap4(vx), vy: wrap4(vy), vz: wrap4(vz),
		bx: wrap4(bx), by: wrap4(by), bz: wrap4(bz),
	}
}

// VoxelIndexFromKeys rebuilds an index from its packed vKey (bits [11:6])
// and bKey (bits [5:0]) forms.
func VoxelIndexFromKeys(vKey, bKey uint32) VoxelIndex {
	vKey &= 0x3F
	bKey &= 0x3F
	return VoxelIndex{
		vx: (vKey >> 4) & 3, vy: (vKey >> 2) & 3, vz: vKey & 3,
		bx: (bKey >> 4) & 3, by: (bKey >> 2) & 3, bz: bKey & 3,
	}
}

func (i VoxelIndex) VX() uint32 { return i.vx }
func (i VoxelIndex) VY() uint32 { return i.vy }
func (i VoxelIndex) VZ() uint32 { return i.vz }
func (i VoxelIndex) BX() uint32 { return i.bx }
func (i VoxelIndex) BY() uint32 { return i.by }
func (i VoxelIndex) BZ() uint32 { return i.bz }

// VKey returns the 6-bit voxel-key component (bits [11:6], 0..63).
func (i VoxelIndex) VKey() uint32 {
	return (i.vx << 4) | (i.vy << 2) | i.vz
}

// BKey returns the 6-bit bitvoxel-key component (bits [5:0], 0..63).
func (i VoxelIndex) BKey() uint32 {
	return (i.bx << 4) | (i.by << 2) | i.bz
}

// Key returns the full 12-bit composite index (0..4095), equal to
// (VKey()<<6)|BKey() and to the bitvoxel's absolute bit position within
// its chunk's BVXLayer.
func (i VoxelIndex) Key() uint32 {
	return (i.VKey() << 6) | i.BKey()
}

// Cmp reports whether i and o address the same bitvoxel.
func (i VoxelIndex) Cmp(o VoxelIndex) bool {
	return i == o
}

// Clone returns a copy of i (VoxelIndex is a value type, so this is i itself).
func (i VoxelIndex) Clone() VoxelIndex { return i }

// WithBX returns a copy of i with its bx coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithBX(bx int32) VoxelIndex { i.bx = wrap4(bx); return i }

// WithBY returns a copy of i with its by coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithBY(by int32) VoxelIndex { i.by = wrap4(by); return i }

// WithBZ returns a copy of i with its bz coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithBZ(bz int32) VoxelIndex { i.bz = wrap4(bz); return i }

// WithVX returns a copy of i with its vx coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithVX(vx int32) VoxelIndex { i.vx = wrap4(vx); return i }

// WithVY returns a copy of i with its vy coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithVY(vy int32) VoxelIndex { i.vy = wrap4(vy); return i }

// WithVZ returns a copy of i with its vz coordinate replaced, wrapping
// modulo 4.
func (i VoxelIndex) WithVZ(vz int32) VoxelIndex { i.vz = wrap4(vz); return i }
