package keygen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/retailnet/backend/internal/domain/confirm"
)

// keyBytes yields 64 hex characters, the maximum key length tokens accept
const keyBytes = 32

// RandomKeyGenerator produces confirmation token keys from crypto/rand
type RandomKeyGenerator struct{}

// NewRandomKeyGenerator creates a new RandomKeyGenerator
func NewRandomKeyGenerator() *RandomKeyGenerator {
	return &RandomKeyGenerator{}
}

// Generate returns a hex-encoded random key
func (g *RandomKeyGenerator) Generate() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

var _ confirm.KeyGenerator = (*RandomKeyGenerator)(nil)
