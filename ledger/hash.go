package ledger

import (
	"crypto/sha256"
	"encoding/hex"
)

// ZeroDigest is the sentinel hash for absent content, e.g. the output side
// of a "tool_start" event. 64 zeros, same width as a real digest.
const ZeroDigest = "0000000000000000000000000000000000000000000000000000000000000000"

// HashContent returns the SHA-256 hex digest (64 characters) of content.
// Pure and deterministic: hashing the same content anywhere always matches
// what the service stores for it.
func HashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
