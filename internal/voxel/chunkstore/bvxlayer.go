package chunkstore

import (
	"github.com/voxelcore/voxelengine/internal/voxel/bitarray"
	"github.com/voxelcore/voxelengine/internal/voxel/bitops"
)

// layerWords is 4096 bits / 32 bits-per-word.
const layerWords = 4096 / 32

// BVXLayer is the 4096-bit state layer of one chunk: one bit per
// bitvoxel, organized as 64 groups of 64 bits where group g is voxel-key
// g and the bit offset within the group is the bitvoxel-key. The layer's
// lifetime is exclusively owned by its chunk.
type BVXLayer struct {
	bits *bitarray.BitArray
}

// NewBVXLayer allocates an empty (all-zero) layer.
func NewBVXLayer() *BVXLayer {
	return &BVXLayer{bits: bitarray.New(layerWords)}
}

// Words exposes the underlying 128 words, e.g. for serialization.
func (l *BVXLayer) Words() []uint32 { return l.bits.Words() }

// Set marks the bitvoxel at idx as present.
func (l *BVXLayer) Set(idx VoxelIndex) {
	setWordBit(l.bits.Words(), idx.Key())
}

// Unset clears the bitvoxel at idx.
func (l *BVXLayer) Unset(idx VoxelIndex) {
	unsetWordBit(l.bits.Words(), idx.Key())
}

// Toggle flips the bitvoxel at idx.
func (l *BVXLayer) Toggle(idx VoxelIndex) {
	toggleWordBit(l.bits.Words(), idx.Key())
}

// Get reports whether the bitvoxel at idx is set.
func (l *BVXLayer) Get(idx VoxelIndex) bool {
	return getWordBit(l.bits.Words(), idx.Key()) != 0
}

// Fill sets all 64 bitvoxels of the voxel addressed by idx's voxel
// coordinates (its bitvoxel coordinates are ignored) in O(1), by setting
// the two consecutive 32-bit words that back that voxel's 64 bits.
func (l *BVXLayer) Fill(idx VoxelIndex) {
	w := l.bits.Words()
	base := 2 * idx.VKey()
	w[base] = 0xFFFFFFFF
	w[base+1] = 0xFFFFFFFF
}

// Empty clears all 64 bitvoxels of the voxel addressed by idx's voxel
// coordinates, in O(1).
func (l *BVXLayer) Empty(idx VoxelIndex) {
	w := l.bits.Words()
	base := 2 * idx.VKey()
	w[base] = 0
	w[base+1] = 0
}

// Count returns the number of set bitvoxels (0..64) within the voxel
// addressed by idx's voxel coordinates.
func (l *BVXLayer) Count(idx VoxelIndex) uint32 {
	w := l.bits.Words()
	base := 2 * idx.VKey()
	return bitops.PopCount(w[base]) + bitops.PopCount(w[base+1])
}

// Length returns the total number of set bitvoxels across the whole layer.
func (l *BVXLayer) Length() uint32 {
	return l.bits.PopCount()
}

func setWordBit(words []uint32, pos uint32) {
	words[pos>>5] = bitops.SetBitAt(words[pos>>5], uint(pos&31))
}

func unsetWordBit(words []uint32, pos uint32) {
	words[pos>>5] = bitops.UnsetBitAt(words[pos>>5], uint(pos&31))
}

func toggleWordBit(words []uint32, pos uint32) {
	words[pos>>5] = bitops.ToggleBitAt(words[pos>>5], uint(pos&31))
}

func getWordBit(words []uint32, pos uint32) uint32 {
	return bitops.BitAt(words[pos>>5], uint(pos&31))
}
