// Package raycast implements the Amanatides-Woo-style voxel DDA traversal
// that walks a world-space line segment through the sparse chunk grid and
// reports the first set bitvoxel it crosses.
package raycast

import (
	"math"

	"github.com/voxelcore/voxelengine/internal/voxel/chunkstore"
	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
	"github.com/voxelcore/voxelengine/internal/voxel/worldindex"
)

// ChunkLookup is the read-only chunk-store view the raycaster needs.
// world.World satisfies this, which lets the raycaster hold a
// non-owning handle to its world without the raycast package importing
// world — world owns the raycaster, not the other way around (spec §9,
// "cyclic ownership").
type ChunkLookup interface {
	GetChunk(key spatial.MortonKey) (chunkstore.Chunk, bool)
}

// Raycaster traverses a world's sparse chunk grid along a line segment.
type Raycaster struct {
	world ChunkLookup
}

// New binds a Raycaster to the given chunk lookup.
func New(world ChunkLookup) *Raycaster {
	return &Raycaster{world: world}
}

func sign(d float64) int32 {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// Cast walks the segment (sx,sy,sz)->(ex,ey,ez) through the world's chunk
// grid at cell size 1.0 and returns the WorldIndex of the first set
// bitvoxel it intersects, or ok=false if the segment misses every set
// bitvoxel before reaching its endpoint.
func (r *Raycaster) Cast(sx, sy, sz, ex, ey, ez float64) (worldindex.WorldIndex, bool) {
	i, j, k := int32(math.Floor(sx)), int32(math.Floor(sy)), int32(math.Floor(sz))
	iEnd, jEnd, kEnd := int32(math.Floor(ex)), int32(math.Floor(ey)), int32(math.Floor(ez))

	dx, dy, dz := ex-sx, ey-sy, ez-sz
	di, dj, dk := sign(dx), sign(dy), sign(dz)

	tx := axisT(sx, float64(i), dx, di)
	ty := axisT(sy, float64(j), dy, dj)
	tz := axisT(sz, float64(k), dz, dk)

	deltaX := axisDelta(dx)
	deltaY := axisDelta(dy)
	deltaZ := axisDelta(dz)

	for {
		idx := worldindex.WorldIndexFrom(float64(i), float64(j), float64(k))
		if chunk, ok := r.world.GetChunk(idx.ChunkKey); ok && chunk.GetBitVoxel(idx.Voxel) {
			return idx, true
		}

		switch {
		case tx <= ty && tx <= tz:
			if i == iEnd {
				return worldindex.WorldIndex{}, false
			}
			tx += deltaX
			i += di
		case ty <= tx && ty <= tz:
			if j == jEnd {
				return worldindex.WorldIndex{}, false
			}
			ty += deltaY
			j += dj
		default:
			if k == kEnd {
				return worldindex.WorldIndex{}, false
			}
			tz += deltaZ
			k += dk
		}
	}
}

// axisT computes the normalized distance from the ray origin to the first
// axis-aligned grid plane ahead of it along one axis.
func axisT(origin, cell float64, delta float64, step int32) float64 {
	if step == 0 {
		return math.Inf(1)
	}
	var boundary float64
	if step > 0 {
		boundary = cell + 1
	} else {
		boundary = cell
	}
	return (boundary - origin) / delta
}

// axisDelta is the parametric distance covered by one full cell step
// along an axis.
func axisDelta(delta float64) float64 {
	if delta == 0 {
		return math.Inf(1)
	}
	return 1 / math.Abs(delta)
}
