package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/jwtx"
)

// TokenService issues SimpleJWT-style HS256 token pairs. With Rotate set a
// refresh returns a new refresh token and blacklists the old one.
type TokenService struct {
	Signer     jwtx.Signer
	Access     jwtx.Verifier
	Refresh    jwtx.Verifier
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Rotate     bool

	now func() time.Time

	mu        sync.Mutex
	blacklist map[string]time.Time // jti -> expiry
}

func NewTokenService(key []byte, accessTTL, refreshTTL time.Duration, rotate bool) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(key)
	if err != nil {
		return nil, err
	}
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	return &TokenService{
		Signer:     signer,
		Access:     jwtx.NewVerifierHS256(key, jwtx.TokenTypeAccess, 0),
		Refresh:    jwtx.NewVerifierHS256(key, jwtx.TokenTypeRefresh, 0),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Rotate:     rotate,
		now:        time.Now,
		blacklist:  map[string]time.Time{},
	}, nil
}

// Issue mints a fresh access and refresh token for id.
func (s *TokenService) Issue(id credstore.Identity) (access, refresh string, err error) {
	now := s.now()
	if access, err = s.sign(jwtx.TokenTypeAccess, id.ID, id.Username, s.AccessTTL, now); err != nil {
		return "", "", err
	}
	if refresh, err = s.sign(jwtx.TokenTypeRefresh, id.ID, id.Username, s.RefreshTTL, now); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Exchange trades a refresh token for a new access token. rotated is ""
// unless Rotate is set.
func (s *TokenService) Exchange(refresh string) (access, rotated string, err error) {
	claims, err := s.Refresh.Verify(refresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	if _, used := s.blacklist[claims.ID]; used {
		return "", "", fmt.Errorf("%w: refresh token blacklisted", ErrTokenInvalid)
	}

	if access, err = s.sign(jwtx.TokenTypeAccess, claims.UserID, claims.Username, s.AccessTTL, now); err != nil {
		return "", "", err
	}
	if !s.Rotate {
		return access, "", nil
	}

	if rotated, err = s.sign(jwtx.TokenTypeRefresh, claims.UserID, claims.Username, s.RefreshTTL, now); err != nil {
		return "", "", err
	}
	if claims.ExpiresAt != nil {
		s.blacklist[claims.ID] = claims.ExpiresAt.Time
	}
	return access, rotated, nil
}

// Verify accepts any live token of either type.
func (s *TokenService) Verify(token string) error {
	if _, err := s.Access.Verify(token); err == nil {
		return nil
	} else if !errors.Is(err, jwtx.ErrTokenType) {
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, err := s.Refresh.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, used := s.blacklist[claims.ID]; used {
		return fmt.Errorf("%w: refresh token blacklisted", ErrTokenInvalid)
	}
	return nil
}

func (s *TokenService) sign(tokenType string, userID int64, username string, ttl time.Duration, now time.Time) (string, error) {
	return s.Signer.Sign(jwtx.NewClaims(tokenType, userID, username, ttl, now))
}

// sweep drops blacklist entries whose token has expired anyway.
func (s *TokenService) sweep(now time.Time) {
	for jti, exp := range s.blacklist {
		if now.After(exp) {
			delete(s.blacklist, jti)
		}
	}
}
