package share

import (
	"crypto/rand"
	"encoding/base64"
)

// TokenBytes is the amount of randomness in a share token.
const TokenBytes = 16

// GenerateToken returns 128 random bits encoded as unpadded base64url,
// which is URL-safe without escaping.
func GenerateToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
