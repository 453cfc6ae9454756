package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password-reset token; the encoded
// token is twice this many hex characters.
const resetTokenBytes = 32

// ResetTokenGenerator produces opaque single-use password reset tokens.
type ResetTokenGenerator interface {
	// Generate returns a new random token.
	Generate() (string, error)
}

// RandomResetTokenGenerator implements ResetTokenGenerator with
// crypto/rand-backed hex tokens.
type RandomResetTokenGenerator struct{}

// NewResetTokenGenerator creates a new RandomResetTokenGenerator.
func NewResetTokenGenerator() *RandomResetTokenGenerator {
	return &RandomResetTokenGenerator{}
}

// Generate implements the ResetTokenGenerator interface.
func (g *RandomResetTokenGenerator) Generate() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
