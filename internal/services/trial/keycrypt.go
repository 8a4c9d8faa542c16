// keycrypt.go seals user-supplied provider keys before they hit the database.
//
// Unlike our own API keys, user keys can't be hashed — we have to send the
// original value to the provider on every request. secretbox gives
// authenticated encryption with a key derived from the server secret, so a
// database dump alone doesn't leak anyone's key.
package trial

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// Sealer encrypts and decrypts stored user keys.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the sealing key from the server's session secret.
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

// Seal encrypts a plaintext key for storage. Output is base64 of
// nonce || ciphertext.
func (s *Sealer) Seal(plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a sealed key from storage.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("malformed sealed key: %w", err)
	}
	if len(raw) < 24 {
		return "", fmt.Errorf("malformed sealed key: too short")
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])

	plaintext, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("failed to decrypt stored key")
	}
	return string(plaintext), nil
}
