package wallet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ChallengePrefix is the fixed lead-in of every message presented for signing.
const ChallengePrefix = "Sign this message to authenticate: "

const nonceBytes = 16

// NewChallenge returns a fresh single-use challenge message with a
// cryptographically random hex suffix.
func NewChallenge() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return ChallengePrefix + hex.EncodeToString(buf), nil
}
