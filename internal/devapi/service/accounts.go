package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/cryptox"
)

const minPasswordLen = 8

// Register creates an account. Messages match Django's validators.
func (s *Service) Register(_ context.Context, req apisdk.RegisterRequest) (credstore.Identity, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	verr := &ValidationError{}
	s.mu.RLock()
	switch {
	case req.Username == "":
		verr.Add("username", "This field may not be blank.")
	case s.usernames[strings.ToLower(req.Username)] != 0:
		verr.Add("username", "Username already taken !")
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			verr.Add("email", "Enter a valid email address.")
		} else if s.emailTaken(req.Email) {
			verr.Add("email", "Email is already registered !")
		}
	}
	s.mu.RUnlock()

	switch {
	case req.Password == "":
		verr.Add("password", "This field may not be blank.")
	case len(req.Password) < minPasswordLen:
		verr.Add("password", "This password is too short. It must contain at least 8 characters.")
	case allDigits(req.Password):
		verr.Add("password", "This password is entirely numeric.")
	}
	if err := verr.OrNil(); err != nil {
		return credstore.Identity{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return credstore.Identity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock; two registrations may have raced.
	if s.usernames[strings.ToLower(req.Username)] != 0 {
		return credstore.Identity{}, Invalid("username", "Username already taken !")
	}

	u := &user{
		Identity: credstore.Identity{
			ID:          s.next("user"),
			Username:    req.Username,
			Email:       req.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Institution: req.Institution,
		},
		passwordHash: hash,
		joined:       s.now(),
	}
	s.users[u.ID] = u
	s.usernames[strings.ToLower(u.Username)] = u.ID
	return u.Identity, nil
}

// Authenticate checks a username and password.
func (s *Service) Authenticate(_ context.Context, username, password string) (credstore.Identity, error) {
	s.mu.RLock()
	u, ok := s.users[s.usernames[strings.ToLower(strings.TrimSpace(username))]]
	s.mu.RUnlock()
	if !ok {
		return credstore.Identity{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.passwordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return credstore.Identity{}, ErrInvalidCredentials
		}
		return credstore.Identity{}, err
	}
	return u.Identity, nil
}

// User returns the identity for id.
func (s *Service) User(_ context.Context, id int64) (credstore.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return credstore.Identity{}, ErrNotFound
	}
	return u.Identity, nil
}

func (s *Service) emailTaken(email string) bool {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func allDigits(v string) bool {
	for _, r := range v {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
