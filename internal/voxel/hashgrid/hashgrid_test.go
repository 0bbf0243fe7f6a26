package hashgrid

import (
	"testing"

	"github.com/voxelcore/voxelengine/internal/voxel/spatial"
)

func TestSetGetRemove(t *testing.T) {
	g := New[string](16)
	k1 := spatial.NewMortonKey(1, 2, 3)
	k2 := spatial.NewMortonKey(4, 5, 6)

	if _, ok := g.Get(k1); ok {
		t.Fatalf("expected absent before insert")
	}
	g.Set(k1, "a")
	g.Set(k2, "b")
	if v, ok := g.Get(k1); !ok || v != "a" {
		t.Fatalf("Get(k1)=%q,%v want a,true", v, ok)
	}
	if v, ok := g.Get(k2); !ok || v != "b" {
		t.Fatalf("Get(k2)=%q,%v want b,true", v, ok)
	}
	if !g.Remove(k1) {
		t.Fatalf("Remove(k1) should report true")
	}
	if _, ok := g.Get(k1); ok {
		t.Fatalf("k1 should be absent after remove")
	}
	if g.Remove(k1) {
		t.Fatalf("Remove is idempotent: second remove should report false")
	}
}

func TestOverwrite(t *testing.T) {
	g := New[int](4)
	k := spatial.NewMortonKey(1, 1, 1)
	g.Set(k, 1)
	g.Set(k, 2)
	if g.Len() != 1 {
		t.Fatalf("Len=%d want 1 (overwrite must not duplicate)", g.Len())
	}
	if v, _ := g.Get(k); v != 2 {
		t.Fatalf("Get=%d want 2", v)
	}
}

func TestInvalidBucketCountDefaults(t *testing.T) {
	g := New[int](0)
	if len(g.buckets) != DefaultBuckets {
		t.Fatalf("bucket count=%d want default %d", len(g.buckets), DefaultBuckets)
	}
	g2 := New[int](-5)
	if len(g2.buckets) != DefaultBuckets {
		t.Fatalf("negative bucket count should default too")
	}
}
