package encoding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns the lowercase hex-encoded SHA-256 digest of v's
// canonical encoding. Used for registry hashes, snapshot hashes, and
// attestation hashes alike, so any two equal values hash identically
// regardless of how they were constructed.
func Hash(v interface{}) (string, error) {
	canonical, err := Canonical(v)
	if err != nil {
		return "", fmt.Errorf("encoding: hash: %w", err)
	}
	return HashBytes(canonical), nil
}

// HashBytes returns the lowercase hex-encoded SHA-256 digest of raw
// bytes, with no canonicalization applied.
func HashBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
