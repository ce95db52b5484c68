package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const codeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// ShortCodeLength is the default length of generated codes.
const ShortCodeLength = 4

// GenerateShortCode returns a random code over a lowercase alphanumeric
// alphabet. Uniqueness is probabilistic; the link store's unique constraint
// is the real guard and callers retry on collision.
func GenerateShortCode(length int) string {
	if length <= 0 {
		length = ShortCodeLength
	}
	b := make([]byte, length)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		b[i] = codeCharset[n.Int64()]
	}
	return string(b)
}

// GenerateAPIKey generates a UUID string to be used as an API key
func GenerateAPIKey() string {
	return uuid.NewString()
}
