package git

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// CacheKey derives an opaque validator string from a tuple of object ids
// and optional disambiguators (ref name, page index). Identical tuples
// always yield identical keys: the inputs are content-addressed ids, so the
// key is stable across requests and processes. The function never looks at
// the clock or any request state.
//
// Parts are joined with a NUL separator before hashing so that no two
// distinct tuples can collide by concatenation.
func CacheKey(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
