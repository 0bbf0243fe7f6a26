package spatial

// LinearKey is a 30-bit spatial key packed as (x<<20)|(y<<10)|z, each axis
// held to 10 bits. It is the simpler, slightly cheaper-to-encode of the two
// key kinds (see MortonKey for the alternative with better hash-grid
// locality).
type LinearKey struct {
	raw uint32
}

// NewLinearKey builds a key from three axis coordinates, wrapping each
// modulo 1024.
func NewLinearKey(x, y, z int32) LinearKey {
	return LinearKey{raw: (wrapAxis(x) << 20) | (wrapAxis(y) << 10) | wrapAxis(z)}
}

// LinearKeyFromScalar reconstructs a key from its already-packed scalar
// form (e.g. as stored in a HashGrid bucket).
func LinearKeyFromScalar(raw uint32) LinearKey {
	return LinearKey{raw: raw & 0x3FFFFFFF}
}

func (k LinearKey) X() uint32 { return (k.raw >> 20) & 0x3FF }
func (k LinearKey) Y() uint32 { return (k.raw >> 10) & 0x3FF }
func (k LinearKey) Z() uint32 { return k.raw & 0x3FF }

// Key returns the packed 30-bit scalar form.
func (k LinearKey) Key() uint32 { return k.raw }

// Cmp reports whether other is also a LinearKey with the same scalar.
func (k LinearKey) Cmp(other Key) bool {
	o, ok := other.(LinearKey)
	return ok && o.raw == k.raw
}

// Clone returns a copy of k (LinearKey is a value type, so this is k itself).
func (k LinearKey) Clone() LinearKey { return k }

func (k LinearKey) IncX() LinearKey { return NewLinearKey(int32(k.X())+1, int32(k.Y()), int32(k.Z())) }
func (k LinearKey) DecX() LinearKey { return NewLinearKey(int32(k.X())-1, int32(k.Y()), int32(k.Z())) }
func (k LinearKey) IncY() LinearKey { return NewLinearKey(int32(k.X()), int32(k.Y())+1, int32(k.Z())) }
func (k LinearKey) DecY() LinearKey { return NewLinearKey(int32(k.X()), int32(k.Y())-1, int32(k.Z())) }
func (k LinearKey) IncZ() LinearKey { return NewLinearKey(int32(k.X()), int32(k.Y()), int32(k.Z())+1) }
func (k LinearKey) DecZ() LinearKey { return NewLinearKey(int32(k.X()), int32(k.Y()), int32(k.Z())-1) }

// Add returns the componentwise sum of k and o, wrapping per axis.
func (k LinearKey) Add(o LinearKey) LinearKey {
	return NewLinearKey(int32(k.X())+int32(o.X()), int32(k.Y())+int32(o.Y()), int32(k.Z())+int32(o.Z()))
}

// Sub returns the componentwise difference of k and o, wrapping per axis.
func (k LinearKey) Sub(o LinearKey) LinearKey {
	return NewLinearKey(int32(k.X())-int32(o.X()), int32(k.Y())-int32(o.Y()), int32(k.Z())-int32(o.Z()))
}
