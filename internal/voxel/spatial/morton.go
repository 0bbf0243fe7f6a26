package spatial

// MortonKey is a 30-bit spatial key using a Z-order (Morton) bit
// interleave: the bit at position 3k comes from x bit k, 3k+1 from y bit
// k, 3k+2 from z bit k. Spatially close coordinates scatter more evenly
// across a modulo-N hash grid than LinearKey's straight packing does,
// which is the reason the world's chunk store prefers it.
type MortonKey struct {
	raw uint32
}

// Axis lane masks: the bits belonging to x, y, z respectively within the
// 30-bit interleaved scalar.
const (
	xLaneMask uint32 = 0x09249249
	yLaneMask uint32 = 0x12492492
	zLaneMask uint32 = 0x24924924

	xyLaneMask uint32 = xLaneMask | yLaneMask
	xzLaneMask uint32 = xLaneMask | zLaneMask
	yzLaneMask uint32 = yLaneMask | zLaneMask
)

// expand3 spreads the low 10 bits of v two bits apart, via the masked
// shift ladder 0x000003ff -> 0xff0000ff -> 0x0300f00f -> 0x030c30c3 ->
// 0x09249249, so it can be OR'd into one interleaved lane.
func expand3(v uint32) uint32 {
	v &= 0x000003ff
	v = (v | (v << 16)) & 0xff0000ff
	v = (v | (v << 8)) & 0x0300f00f
	v = (v | (v << 4)) & 0x030c30c3
	v = (v | (v << 2)) & 0x09249249
	return v
}

// compact3 is expand3's inverse: it pulls one interleaved lane back down
// into a dense 10-bit value.
func compact3(v uint32) uint32 {
	v &= 0x09249249
	v = (v | (v >> 2)) & 0x030c30c3
	v = (v | (v >> 4)) & 0x0300f00f
	v = (v | (v >> 8)) & 0xff0000ff
	v = (v | (v >> 16)) & 0x000003ff
	return v
}

// NewMortonKey builds a key from three axis coordinates, wrapping each
// modulo 1024 before interleaving.
func NewMortonKey(x, y, z int32) MortonKey {
	return MortonKey{raw: expand3(wrapAxis(x)) | (expand3(wrapAxis(y)) << 1) | (expand3(wrapAxis(z)) << 2)}
}

// MortonKeyFromScalar reconstructs a key from its already-interleaved
// scalar form.
func MortonKeyFromScalar(raw uint32) MortonKey {
	return MortonKey{raw: raw & 0x3FFFFFFF}
}

func (k MortonKey) X() uint32 { return compact3(k.raw) }
func (k MortonKey) Y() uint32 { return compact3(k.raw >> 1) }
func (k MortonKey) Z() uint32 { return compact3(k.raw >> 2) }

// Key returns the packed 30-bit interleaved scalar form.
func (k MortonKey) Key() uint32 { return k.raw }

// Cmp reports whether other is also a MortonKey with the same scalar.
func (k MortonKey) Cmp(other Key) bool {
	o, ok := other.(MortonKey)
	return ok && o.raw == k.raw
}

// Clone returns a copy of k (MortonKey is a value type, so this is k itself).
func (k MortonKey) Clone() MortonKey { return k }

// incAxis and decAxis step one lane by its unit weight without disturbing
// the others. incAxis temporarily forces the unaffected lanes to all-ones
// so the add's carry passes straight through them; decAxis clears them to
// zero so the subtract's borrow passes straight through them. Either way
// the result is masked to the own lane and the untouched lanes are
// restored from the original value.
func incAxis(k, unit, ownMask, otherMask uint32) MortonKey {
	return MortonKey{raw: (((k | otherMask) + unit) & ownMask) | (k & otherMask)}
}

func decAxis(k, unit, ownMask, otherMask uint32) MortonKey {
	return MortonKey{raw: (((k & ownMask) - unit) & ownMask) | (k & otherMask)}
}

func (k MortonKey) IncX() MortonKey { return incAxis(k.raw, 1, xLaneMask, yzLaneMask) }
func (k MortonKey) DecX() MortonKey { return decAxis(k.raw, 1, xLaneMask, yzLaneMask) }
func (k MortonKey) IncY() MortonKey { return incAxis(k.raw, 2, yLaneMask, xzLaneMask) }
func (k MortonKey) DecY() MortonKey { return decAxis(k.raw, 2, yLaneMask, xzLaneMask) }
func (k MortonKey) IncZ() MortonKey { return incAxis(k.raw, 4, zLaneMask, xyLaneMask) }
func (k MortonKey) DecZ() MortonKey { return decAxis(k.raw, 4, zLaneMask, xyLaneMask) }

// Add returns the componentwise sum of k and o, wrapping per axis.
func (k MortonKey) Add(o MortonKey) MortonKey {
	return NewMortonKey(int32(k.X())+int32(o.X()), int32(k.Y())+int32(o.Y()), int32(k.Z())+int32(o.Z()))
}

// Sub returns the componentwise difference of k and o, wrapping per axis.
func (k MortonKey) Sub(o MortonKey) MortonKey {
	return NewMortonKey(int32(k.X())-int32(o.X()), int32(k.Y())-int32(o.Y()), int32(k.Z())-int32(o.Z()))
}
