// Package spatial implements the two 30-bit spatial key encodings used to
// index chunks into the world's hash grid: a straight bit-packed LinearKey
// and a Z-order interleaved MortonKey. Both wrap silently on overflow —
// there is no way to construct an invalid key.
package spatial

// AxisBits is the number of bits each axis occupies (0..1023).
const AxisBits = 10

// AxisMod is the wrap modulus for a single axis (1024).
const AxisMod = 1 << AxisBits

// Key is the capability set shared by LinearKey and MortonKey: axis
// accessors, the packed scalar form, and equality. Both types also have
// per-axis Inc/Dec, pairwise Add/Sub and Clone methods, which return the
// concrete key type and so are not part of this interface.
type Key interface {
	X() uint32
	Y() uint32
	Z() uint32
	Key() uint32
	Cmp(other Key) bool
}

// wrapAxis reduces v to the 0..1023 range, wrapping modulo 1024 for both
// negative and overflowing inputs.
func wrapAxis(v int32) uint32 {
	m := int32(AxisMod)
	return uint32(((v % m) + m) % m)
}
