package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CacheKey derives an opaque key from request parts so URLs and team ids
// never appear verbatim in a shared cache. Parts are NUL separated, so
// ("ab", "c") and ("a", "bc") differ.
func CacheKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}
