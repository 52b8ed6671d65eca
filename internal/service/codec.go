package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"fmt"
)

// TokenCodec produces opaque token plaintexts and their storage hashes. It
// holds no state and is safe for concurrent use; one instance is constructed
// at startup and handed to the token service.
type TokenCodec struct{}

func NewTokenCodec() TokenCodec {
	return TokenCodec{}
}

// Generate draws 32 bytes from crypto/rand and encodes them as unpadded
// base32, which is case-insensitive and safe in headers and URLs. The hash is
// SHA-256 over the encoded text bytes, not the raw random bytes, so the
// stored digest is bound to exactly the string the client will present.
func (c TokenCodec) Generate() (string, []byte, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("failed to read random source: %w", err)
	}
	plaintext := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)
	return plaintext, c.Hash(plaintext), nil
}

// Hash recomputes the storage digest for a client-supplied plaintext.
func (c TokenCodec) Hash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	return sum[:]
}
