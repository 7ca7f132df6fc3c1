package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GenerationKey derives the cache key for generated code from the raw bytes
// of every input document, in order. The key format is: gen:hash.
func GenerationKey(inputs ...[]byte) string {
	h := sha256.New()
	for _, in := range inputs {
		// Parts are length-prefixed; plain concatenation is ambiguous.
		fmt.Fprintf(h, "%d:", len(in))
		h.Write(in)
	}
	return "gen:" + hex.EncodeToString(h.Sum(nil))
}
