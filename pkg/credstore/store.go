package credstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrPartialCredentials rejects an access token without a refresh token
	// or the other way round.
	ErrPartialCredentials = errors.New("credstore: access and refresh tokens must be set together")
)

// Backend is the durable side of a Store. Save must write all three fields
// in one transaction; Load may return the zero Credentials when nothing is
// stored.
type Backend interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, c Credentials) error
	Clear(ctx context.Context) error
}

// Store holds the current credential pair. Reads are served from memory so
// Get never fails; writes go to memory first and then to the Backend.
type Store struct {
	mu      sync.RWMutex
	current Credentials

	// writeMu orders backend writes so the durable copy ends up matching the
	// last in-memory swap.
	writeMu sync.Mutex
	backend Backend
	log     *slog.Logger
}

// Open loads whatever the backend holds and returns a ready Store. A
// partial record left behind by an older writer is discarded and cleared.
func Open(ctx context.Context, backend Backend, logger *slog.Logger) (*Store, error) {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if logger == nil {
		logger = slog.Default()
	}

	creds, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("credstore: load: %w", err)
	}

	if !creds.valid() {
		logger.Warn("discarding partial stored credentials")
		if err := backend.Clear(ctx); err != nil {
			return nil, fmt.Errorf("credstore: clear partial: %w", err)
		}
		creds = Credentials{}
	}

	return &Store{current: creds, backend: backend, log: logger}, nil
}

// Get returns a copy of the current credentials.
func (s *Store) Get() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// SetAuth replaces all three fields at once. Readers never observe the new
// access token without the new refresh token.
func (s *Store) SetAuth(ctx context.Context, identity *Identity, access, refresh string) error {
	next := Credentials{Access: access, Refresh: refresh, Identity: identity}.clone()
	if !next.valid() {
		return ErrPartialCredentials
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("credstore: save: %w", err)
	}
	return nil
}

// ClearAuth drops everything. Memory is cleared before the backend so a
// failing backend can't leave a usable token in the process.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = Credentials{}
	s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}
