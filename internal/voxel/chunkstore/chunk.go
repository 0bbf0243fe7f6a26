package chunkstore

import "github.com/voxelcore/voxelengine/internal/voxel/spatial"

// MetaWidth identifies a chunk's per-voxel metadata payload width.
type MetaWidth int

const (
	Meta0  MetaWidth = 0
	Meta8  MetaWidth = 8
	Meta16 MetaWidth = 16
	Meta32 MetaWidth = 32
)

// Chunk is the capability set shared by the four metadata-width variants:
// bitvoxel state delegates to a BVXLayer, metadata is addressed by vKey
// only (all 64 bitvoxels in a voxel share one metadata slot), and chunks
// compare equal iff their Morton keys are equal.
type Chunk interface {
	Key() spatial.MortonKey
	Layer() *BVXLayer

	SetBitVoxel(idx VoxelIndex)
	UnsetBitVoxel(idx VoxelIndex)
	ToggleBitVoxel(idx VoxelIndex)
	GetBitVoxel(idx VoxelIndex) bool
	FillVoxel(idx VoxelIndex)
	EmptyVoxel(idx VoxelIndex)
	GetBitVoxelCount(idx VoxelIndex) uint32
	Length() uint32

	MetaWidth() MetaWidth
	GetMeta(vKey uint32) uint32
	SetMeta(vKey uint32, value uint32)

	Cmp(other Chunk) bool
}

// metaStore is the payload-storage strategy a chunk variant plugs in; it
// is intentionally unexported so callers can't reach past Chunk's
// capability set to the backing storage type (see spec §9, "do not
// expose the payload storage type").
type metaStore interface {
	width() MetaWidth
	get(vKey uint32) uint32
	set(vKey uint32, value uint32)
}

// meta0Store is the 0-bit variant: writes are no-ops, reads always return 0.
type meta0Store struct{}

func (meta0Store) width() MetaWidth  { return Meta0 }
func (meta0Store) get(uint32) uint32 { return 0 }
func (meta0Store) set(uint32, uint32) {}

// meta8Store is the 8-bit variant: one byte per voxel, addressed by vKey.
type meta8Store struct {
	data [64]uint8
}

func (s *meta8Store) width() MetaWidth  { return Meta8 }
func (s *meta8Store) get(vKey uint32) uint32 { return uint32(s.data[vKey&0x3F]) }
func (s *meta8Store) set(vKey uint32, value uint32) {
	s.data[vKey&0x3F] = uint8(value & 0xFF)
}

// meta16Store is the 16-bit variant: two bytes per voxel, addressed by vKey.
type meta16Store struct {
	data [64]uint16
}

func (s *meta16Store) width() MetaWidth { return Meta16 }
func (s *meta16Store) get(vKey uint32) uint32 { return uint32(s.data[vKey&0x3F]) }
func (s *meta16Store) set(vKey uint32, value uint32) {
	// The masking bug noted in spec §9 (masking with 0xFFFF0000 before a
	// 16-bit write, discarding the caller's low 16 bits) is not
	// reproduced: the low 16 bits are what this variant stores.
	s.data[vKey&0x3F] = uint16(value & 0xFFFF)
}

// meta32Store is the 32-bit variant: a full 32-bit slot per voxel,
// addressed by vKey. The source this engine is modeled on allocated 256
// bytes for this variant but viewed them as a 128-entry Uint16Array,
// storing only 16 bits per voxel despite the variant's name; that
// narrowing is not reproduced here — each voxel gets a genuine 32-bit slot.
type meta32Store struct {
	data [64]uint32
}

func (s *meta32Store) width() MetaWidth { return Meta32 }
func (s *meta32Store) get(vKey uint32) uint32 { return s.data[vKey&0x3F] }
func (s *meta32Store) set(vKey uint32, value uint32) {
	s.data[vKey&0x3F] = value
}

// chunk is the single concrete implementation behind all four variants;
// only the plugged-in metaStore differs.
type chunk struct {
	key   spatial.MortonKey
	layer *BVXLayer
	meta  metaStore
}

func newChunk(key spatial.MortonKey, meta metaStore) *chunk {
	return &chunk{key: key, layer: NewBVXLayer(), meta: meta}
}

// NewChunk0 creates a chunk with no per-voxel metadata.
func NewChunk0(key spatial.MortonKey) Chunk { return newChunk(key, meta0Store{}) }

// NewChunk8 creates a chunk with an 8-bit-per-voxel metadata payload.
func NewChunk8(key spatial.MortonKey) Chunk { return newChunk(key, &meta8Store{}) }

// NewChunk16 creates a chunk with a 16-bit-per-voxel metadata payload.
func NewChunk16(key spatial.MortonKey) Chunk { return newChunk(key, &meta16Store{}) }

// NewChunk32 creates a chunk with a 32-bit-per-voxel metadata payload.
func NewChunk32(key spatial.MortonKey) Chunk { return newChunk(key, &meta32Store{}) }

func (c *chunk) Key() spatial.MortonKey { return c.key }
func (c *chunk) Layer() *BVXLayer       { return c.layer }

func (c *chunk) SetBitVoxel(idx VoxelIndex)    { c.layer.Set(idx) }
func (c *chunk) UnsetBitVoxel(idx VoxelIndex)  { c.layer.Unset(idx) }
func (c *chunk) ToggleBitVoxel(idx VoxelIndex) { c.layer.Toggle(idx) }
func (c *chunk) GetBitVoxel(idx VoxelIndex) bool { return c.layer.Get(idx) }
func (c *chunk) FillVoxel(idx VoxelIndex)      { c.layer.Fill(idx) }
func (c *chunk) EmptyVoxel(idx VoxelIndex)     { c.layer.Empty(idx) }
func (c *chunk) GetBitVoxelCount(idx VoxelIndex) uint32 { return c.layer.Count(idx) }
func (c *chunk) Length() uint32                { return c.layer.Length() }

func (c *chunk) MetaWidth() MetaWidth                { return c.meta.width() }
func (c *chunk) GetMeta(vKey uint32) uint32           { return c.meta.get(vKey) }
func (c *chunk) SetMeta(vKey uint32, value uint32)    { c.meta.set(vKey, value) }

// Cmp reports whether other is a chunk with the same Morton key,
// regardless of metadata variant.
func (c *chunk) Cmp(other Chunk) bool {
	if other == nil {
		return false
	}
	return c.key.Cmp(other.Key())
}
