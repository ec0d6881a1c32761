package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// NewVerificationToken returns a URL-safe random token. nBytes is the amount
// of source entropy, 32 bytes (256 bits) by default.
func NewVerificationToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
