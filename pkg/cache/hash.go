package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// hashKey builds "prefix:sha256(parts)". Parts are printed with %#v, which
// spells out NaN and the infinities, so every option value keys distinctly.
func hashKey(prefix string, parts ...any) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%#v", parts))
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
