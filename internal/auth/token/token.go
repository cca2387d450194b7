// Package token generates and hashes opaque bearer tokens. Portal tokens
// are high-entropy random values, so a plain SHA-256 digest is what gets
// persisted; only the hash ever touches the database.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// PortalTokenBytes is the entropy of a candidate portal token.
const PortalTokenBytes = 32

// Generate returns a URL-safe random token of size bytes of entropy.
func Generate(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash returns the hex SHA-256 digest used for token lookup.
func Hash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
