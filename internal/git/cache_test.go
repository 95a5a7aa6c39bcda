package git

import "testing"

func TestCacheKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := CacheKey("abc123", "master", "2")
	b := CacheKey("abc123", "master", "2")
	if a != b {
		t.Fatalf("identical tuples gave different keys: %q vs %q", a, b)
	}
}

func TestCacheKey_VaryingAnyPartChangesKey(t *testing.T) {
	t.Parallel()

	base := CacheKey("abc123", "master", "2")
	for _, parts := range [][]string{
		{"abc124", "master", "2"},
		{"abc123", "develop", "2"},
		{"abc123", "master", "3"},
		{"abc123", "master"},
	} {
		if got := CacheKey(parts...); got == base {
			t.Fatalf("CacheKey(%v) collided with base tuple", parts)
		}
	}
}

func TestCacheKey_NoConcatenationCollision(t *testing.T) {
	t.Parallel()

	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Fatal("adjacent parts collided by concatenation")
	}
}
