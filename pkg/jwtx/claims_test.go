package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestValidateTokenType(t *testing.T) {
	c := &jwtx.Claims{TokenType: jwtx.TokenTypeRefresh}

	t.Run("matching type", func(t *testing.T) {
		require.NoError(t, c.ValidateTokenType(jwtx.TokenTypeRefresh))
	})

	t.Run("empty expected type", func(t *testing.T) {
		require.NoError(t, c.ValidateTokenType(""))
	})

	t.Run("mismatched type", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateTokenType(jwtx.TokenTypeAccess), jwtx.ErrTokenType)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway covers small skew", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-5 * time.Second)),
		}}
		require.NoError(t, c.ValidateExpiryWithLeeway(time.Minute))
	})
}

func TestNewClaims(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := jwtx.NewClaims(jwtx.TokenTypeAccess, 42, "alice", time.Minute, now)

	require.Equal(t, "42", c.Subject)
	require.EqualValues(t, 42, c.UserID)
	require.NotEmpty(t, c.ID)

	left, ok := c.ExpiresIn(now)
	require.True(t, ok)
	require.Equal(t, time.Minute, left.Round(time.Second))
}

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	tok, err := signer.Sign(jwtx.NewClaims(jwtx.TokenTypeAccess, 7, "bob", time.Minute, time.Now()))
	require.NoError(t, err)

	t.Run("accepts own token", func(t *testing.T) {
		got, err := jwtx.NewVerifierHS256(testKey, jwtx.TokenTypeAccess, 0).Verify(tok)
		require.NoError(t, err)
		require.EqualValues(t, 7, got.UserID)
		require.Equal(t, "bob", got.Username)
	})

	t.Run("rejects wrong token type", func(t *testing.T) {
		_, err := jwtx.NewVerifierHS256(testKey, jwtx.TokenTypeRefresh, 0).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrTokenType)
	})

	t.Run("rejects other key", func(t *testing.T) {
		other := []byte(strings.Repeat("z", 32))
		_, err := jwtx.NewVerifierHS256(other, "", 0).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifierHS256(testKey, "", 0).Verify("not-a-token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestHS256RejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)

	tok, err := signer.Sign(jwtx.NewClaims(jwtx.TokenTypeAccess, 1, "", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierHS256(testKey, jwtx.TokenTypeAccess, 0).Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestNewSignerRejectsShortKey(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.Error(t, err)
}

func TestParseUnverified(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewClaims(jwtx.TokenTypeRefresh, 3, "carol", time.Hour, time.Now()))
	require.NoError(t, err)

	c, err := jwtx.ParseUnverified(tok)
	require.NoError(t, err)
	require.Equal(t, jwtx.TokenTypeRefresh, c.TokenType)
	require.Equal(t, "carol", c.Username)

	_, err = jwtx.ParseUnverified("a.b")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}
