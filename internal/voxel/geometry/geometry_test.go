package geometry

import (
	"testing"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

type fakeLookup struct {
	chunks map[uint32]chunkstore.Chunk
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{chunks: map[uint32]chunkstore.Chunk{}}
}

func (f *fakeLookup) insert(c chunkstore.Chunk) {
	f.chunks[c.Key().Key()] = c
}

func (f *fakeLookup) GetChunk(key spatial.MortonKey) (chunkstore.Chunk, bool) {
	c, ok := f.chunks[key.Key()]
	return c, ok
}

func TestSolveIsolatedVoxelAllFacesVisible(t *testing.T) {
	w := newFakeLookup()
	c := chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0))
	idx := chunkstore.NewVoxelIndex(1, 1, 1, 1, 1, 1)
	c.SetBitVoxel(idx)
	w.insert(c)

	mask := Solve(c, w)
	if got := mask[idx.Key()]; got != 0x3F {
		t.Fatalf("isolated voxel mask=%#x want 0x3f", got)
	}
	if mask[chunkstore.NewVoxelIndex(0, 0, 0, 0, 0, 0).Key()] != 0 {
		t.Fatalf("unset bitvoxel should have zero mask")
	}
}

func TestSolveAdjacentPairHidesSharedFaces(t *testing.T) {
	w := newFakeLookup()
	c := chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0))
	a := chunkstore.NewVoxelIndex(1, 1, 1, 1, 1, 1)
	b := chunkstore.NewVoxelIndex(1, 1, 1, 2, 1, 1) // +x neighbor of a within the same voxel
	c.SetBitVoxel(a)
	c.SetBitVoxel(b)
	w.insert(c)

	mask := Solve(c, w)
	// a's +x face (bit 0) is occluded by b; b's -x face (bit 1) is occluded by a.
	if mask[a.Key()]&(1<<0) != 0 {
		t.Fatalf("a's +x face should be occluded, mask=%#x", mask[a.Key()])
	}
	if mask[b.Key()]&(1<<1) != 0 {
		t.Fatalf("b's -x face should be occluded, mask=%#x", mask[b.Key()])
	}
	// every other face on both voxels should still be visible.
	if mask[a.Key()]&^byte(1<<0) != 0x3E {
		t.Fatalf("a's other faces should be visible, mask=%#x", mask[a.Key()])
	}
	if mask[b.Key()]&^byte(1<<1) != 0x3D {
		t.Fatalf("b's other faces should be visible, mask=%#x", mask[b.Key()])
	}
}

func TestSolveCrossesChunkBoundary(t *testing.T) {
	w := newFakeLookup()
	origin := chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0))
	// last bitvoxel along +x within the origin chunk.
	edge := chunkstore.NewVoxelIndex(3, 1, 1, 3, 1, 1)
	origin.SetBitVoxel(edge)
	w.insert(origin)

	neighbor := chunkstore.NewChunk0(spatial.NewMortonKey(1, 0, 0))
	// first bitvoxel along +x within the +x-neighbor chunk, adjacent to edge.
	across := chunkstore.NewVoxelIndex(0, 1, 1, 0, 1, 1)
	neighbor.SetBitVoxel(across)
	w.insert(neighbor)

	mask := Solve(origin, w)
	if mask[edge.Key()]&(1<<0) != 0 {
		t.Fatalf("edge's +x face should be occluded by the neighbor chunk, mask=%#x", mask[edge.Key()])
	}

	maskAcross := Solve(neighbor, w)
	if maskAcross[across.Key()]&(1<<1) != 0 {
		t.Fatalf("across's -x face should be occluded by the origin chunk, mask=%#x", maskAcross[across.Key()])
	}
}

func TestSolveMissingNeighborTreatedAsEmpty(t *testing.T) {
	w := newFakeLookup()
	c := chunkstore.NewChunk0(spatial.NewMortonKey(5, 5, 5))
	idx := chunkstore.NewVoxelIndex(0, 0, 0, 0, 0, 0)
	c.SetBitVoxel(idx)
	w.insert(c)

	mask := Solve(c, w)
	if mask[idx.Key()] != 0x3F {
		t.Fatalf("voxel at a chunk with no neighbors loaded should show all faces, mask=%#x", mask[idx.Key()])
	}
}

func TestSolveEmptyChunkIsAllZero(t *testing.T) {
	w := newFakeLookup()
	c := chunkstore.NewChunk0(spatial.NewMortonKey(0, 0, 0))
	mask := Solve(c, w)
	for i, m := range mask {
		if m != 0 {
			t.Fatalf("empty chunk should have an all-zero mask, entry %d=%#x", i, m)
		}
	}
}

func buildTestLUT() LUT {
	var lut LUT
	for mask := 0; mask < 64; mask++ {
		n := int(popcount(uint32(mask)))
		idx := make([]uint32, n*6)
		for i := range idx {
			idx[i] = uint32(i)
		}
		lut.Indices[mask] = idx

		flipped := make([]uint32, n*6)
		for i := range flipped {
			flipped[i] = uint32(i) + 1000
		}
		lut.IndicesFlipped[mask] = flipped
	}
	return lut
}

func popcount(v uint32) uint32 {
	var n uint32
	for v != 0 {
		n += v & 1
		v >>= 1
	}
	return n
}

func TestGetIndicesLengthMatchesPopCountTimesSix(t *testing.T) {
	var mask MaskBuffer
	mask[10] = 0x3F // 6 faces
	mask[20] = 0x01 // 1 face
	lut := buildTestLUT()

	out, err := GetIndices(mask, lut, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 6*6+1*6 {
		t.Fatalf("len(out)=%d want %d", len(out), 6*6+1*6)
	}
}

func TestGetIndicesOffsetsByBitvoxelBlock(t *testing.T) {
	var mask MaskBuffer
	mask[0] = 0x01
	mask[1] = 0x01
	lut := buildTestLUT()

	out, err := GetIndices(mask, lut, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 12 {
		t.Fatalf("len(out)=%d want 12", len(out))
	}
	// bitvoxel 0's indices are unshifted; bitvoxel 1's are shifted by 24.
	if out[0] != 0 {
		t.Fatalf("out[0]=%d want 0", out[0])
	}
	if out[6] != vertsPerBitvoxel {
		t.Fatalf("out[6]=%d want %d", out[6], vertsPerBitvoxel)
	}
}

func TestGetIndicesFlippedUsesFlippedTable(t *testing.T) {
	var mask MaskBuffer
	mask[0] = 0x01
	lut := buildTestLUT()

	out, err := GetIndices(mask, lut, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != 1000 {
		t.Fatalf("out[0]=%d want 1000 (flipped table entry)", out[0])
	}
}

func TestGetIndicesRejectsWrongLengthBuffer(t *testing.T) {
	var mask MaskBuffer
	mask[0] = 0x3F
	lut := buildTestLUT()

	bad := make([]uint32, 5)
	if _, err := GetIndices(mask, lut, false, bad); err != ErrOutOfRange {
		t.Fatalf("err=%v want ErrOutOfRange", err)
	}
}

func TestGetIndicesReusesCorrectlySizedBuffer(t *testing.T) {
	var mask MaskBuffer
	mask[0] = 0x3F
	lut := buildTestLUT()

	buf := make([]uint32, 36)
	out, err := GetIndices(mask, lut, false, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if &out[0] != &buf[0] {
		t.Fatalf("expected the supplied buffer to be reused in place")
	}
}

func TestGetIndicesEmptyMaskYieldsEmptyBuffer(t *testing.T) {
	var mask MaskBuffer
	lut := buildTestLUT()

	out, err := GetIndices(mask, lut, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out)=%d want 0", len(out))
	}
}
