// Package hashgrid implements a fixed-bucket hash map keyed by a spatial
// key's 30-bit scalar form, with linear-scan chaining within a bucket.
package hashgrid

// DefaultBuckets is used when a HashGrid is constructed with an invalid
// (non-positive) bucket count.
const DefaultBuckets = 1024

// Keyed is anything that can hand back its packed scalar key — both
// spatial.LinearKey and spatial.MortonKey satisfy this.
type Keyed interface {
	Key() uint32
}

type entry[V any] struct {
	scalar uint32
	value  V
}

// HashGrid is a fixed-bucket map from a spatial key's scalar form to a
// value. Bucket selection is scalar % N; membership within a bucket is a
// linear scan. At most one entry exists per distinct scalar.
type HashGrid[V any] struct {
	buckets [][]entry[V]
}

// New allocates a HashGrid with n buckets. n<1 falls back to
// DefaultBuckets.
func New[V any](n int) *HashGrid[V] {
	if n < 1 {
		n = DefaultBuckets
	}
	return &HashGrid[V]{buckets: make([][]entry[V], n)}
}

func (g *HashGrid[V]) bucketIndex(scalar uint32) int {
	return int(scalar % uint32(len(g.buckets)))
}

// Set stores v under k's scalar key, overwriting any existing value for
// the same scalar.
func (g *HashGrid[V]) Set(k Keyed, v V) {
	scalar := k.Key()
	bi := g.bucketIndex(scalar)
	bucket := g.buckets[bi]
	for i := range bucket {
		if bucket[i].scalar == scalar {
			bucket[i].value = v
			return
		}
	}
	g.buckets[bi] = append(bucket, entry[V]{scalar: scalar, value: v})
}

// Get returns the value stored under k's scalar key, or the zero value
// and false if absent.
func (g *HashGrid[V]) Get(k Keyed) (V, bool) {
	scalar := k.Key()
	bucket := g.buckets[g.bucketIndex(scalar)]
	for _, e := range bucket {
		if e.scalar == scalar {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes the entry under k's scalar key, restoring the pre-insert
// state for that key. It reports whether an entry was present.
func (g *HashGrid[V]) Remove(k Keyed) bool {
	scalar := k.Key()
	bi := g.bucketIndex(scalar)
	bucket := g.buckets[bi]
	for i, e := range bucket {
		if e.scalar == scalar {
			g.buckets[bi] = append(bucket[:i:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the total number of entries across all buckets.
func (g *HashGrid[V]) Len() int {
	n := 0
	for _, b := range g.buckets {
		n += len(b)
	}
	return n
}

// Range calls fn for every stored entry in unspecified bucket order,
// stopping early if fn returns false. Entries are snapshotted from
// their bucket slice before fn is called, so fn may safely call Set or
// Remove on g without disturbing the traversal.
func (g *HashGrid[V]) Range(fn func(scalar uint32, v V) bool) {
	for _, bucket := range g.buckets {
		for _, e := range bucket {
			if !fn(e.scalar, e.value) {
				return
			}
		}
	}
}
