package geometry

import (
	"errors"

	"github.com/voxelcore/voxelengine/internal/voxel/bitops"
)

// ErrOutOfRange is returned by GetIndices when a caller-supplied output
// buffer's length does not match the buffer GetIndices would otherwise
// allocate.
var ErrOutOfRange = errors.New("geometry: output buffer length mismatch")

// vertsPerBitvoxel is the stride a bitvoxel's own vertex block occupies
// in the renderer's vertex buffer; LUT indices are local to one
// bitvoxel and are offset by this amount times the bitvoxel's position
// in the mask buffer before being written to the output.
const vertsPerBitvoxel = 24

// LUT is the renderer-supplied lookup table the index expander consumes.
// Indices[mask] and IndicesFlipped[mask] hold the local triangle
// indices for the face combination named by mask (0..63); the engine
// never interprets their contents, only offsets them. LUT content is
// the renderer's responsibility, not this engine's.
type LUT struct {
	Indices        [64][]uint32
	IndicesFlipped [64][]uint32
}

// GetIndices expands a face-visibility mask buffer into a flat triangle
// index buffer, offsetting each bitvoxel's local LUT indices by its
// 24-vertex block. The result always has length 6*popcount(faceGeometry)
// (six indices per visible face).
//
// If out is non-nil, it is reused in place and must already have that
// length, or ErrOutOfRange is returned; if out is nil, a new buffer is
// allocated.
func GetIndices(faceGeometry MaskBuffer, lut LUT, flipped bool, out []uint32) ([]uint32, error) {
	table := &lut.Indices
	if flipped {
		table = &lut.IndicesFlipped
	}

	want := 0
	for _, mask := range faceGeometry {
		want += int(bitops.PopCount(uint32(mask))) * 6
	}

	if out != nil {
		if len(out) != want {
			return nil, ErrOutOfRange
		}
	} else {
		out = make([]uint32, want)
	}

	pos := 0
	for i, mask := range faceGeometry {
		if mask == 0 {
			continue
		}
		base := uint32(i) * vertsPerBitvoxel
		for _, localIdx := range table[mask] {
			out[pos] = localIdx + base
			pos++
		}
	}
	return out, nil
}
