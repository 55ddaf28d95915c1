package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// minKeyLen is the shortest HMAC secret we accept.
const minKeyLen = 32

// HS256Signer signs tokens with a shared HMAC secret, the way SimpleJWT
// does with Django's SECRET_KEY.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The key must be at least 32 bytes.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < minKeyLen {
		return nil, errors.New("jwtx: HMAC key must be at least 32 bytes")
	}
	return &HS256Signer{key: append([]byte(nil), key...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
