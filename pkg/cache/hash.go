package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key: prefix, a colon, then the
// SHA-256 of the JSON-encoded parts. Hashing keeps raw URLs and level
// content out of the key space, so keys stay fixed-length and safe for
// filenames and redis alike.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline uses it to fingerprint level content for the timings cache.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
