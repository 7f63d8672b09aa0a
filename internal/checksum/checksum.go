// Package checksum fingerprints backing-file contents.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
// A nil slice (no file) hashes to the empty string so that
// "absent" and "empty" stay distinguishable.
func Sum(data []byte) string {
	if data == nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
