package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

// NonceSize is the number of random bytes in an OAuth state nonce
const NonceSize = 32

// NewNonce returns size random bytes from r, hex encoded
func NewNonce(r io.Reader, size int) (string, error) {
	if size < 16 {
		return "", fmt.Errorf("nonce size %d is below the 16 byte minimum", size)
	}
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NonceVerifier decides whether the state presented on a callback matches the
// nonce issued with the login redirect
type NonceVerifier func(presented, issued string) bool

// VerifyNonce compares in constant time. An empty value never matches.
func VerifyNonce(presented, issued string) bool {
	if presented == "" || issued == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(issued)) == 1
}
