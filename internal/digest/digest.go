// Package digest hashes bearer tokens so raw token material never reaches
// storage.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Token returns the hex-encoded SHA-256 digest of a bearer token. The digest
// is the session table's partition key; a leaked table exposes no usable
// tokens.
func Token(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
