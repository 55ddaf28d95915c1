package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// sealerInfo binds derived keys to this use so the same passphrase can't
// be replayed against another purpose.
const sealerInfo = "fireme credential sealer v1"

var (
	ErrEmptyKey   = errors.New("cryptox: empty sealing key")
	ErrCiphertext = errors.New("cryptox: malformed ciphertext")
)

// Sealer encrypts small secrets (tokens) at rest with XChaCha20-Poly1305.
// Output is base64(nonce|ciphertext|tag) so it fits in a TEXT column or a
// redis string.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit key from passphrase via HKDF-SHA256.
func NewSealer(passphrase string) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(sealerInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: init cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. label is authenticated but not encrypted; use it
// to pin a ciphertext to the slot it was written to.
func (s *Sealer) Seal(plaintext, label string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("cryptox: nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(label))
	return base64.RawStdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. A wrong key, label or tampered input all fail.
func (s *Sealer) Open(sealed, label string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertext, err)
	}
	ns := s.aead.NonceSize()
	if len(raw) < ns+s.aead.Overhead() {
		return "", ErrCiphertext
	}
	pt, err := s.aead.Open(nil, raw[:ns], raw[ns:], []byte(label))
	if err != nil {
		return "", fmt.Errorf("cryptox: open: %w", err)
	}
	return string(pt), nil
}
