package cache

import (
	"crypto/sha256"
	"encoding/hex"

	json "github.com/goccy/go-json"
)

// LayoutKey derives the cache key for a layout of the graph whose
// content digest is graphHash. Any change to algorithm or opts
// produces a different key.
func LayoutKey(graphHash, algorithm string, opts any) string {
	return hashKey("layout", graphHash, algorithm, opts)
}

// hashKey joins prefix with the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
