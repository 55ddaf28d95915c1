// Package redis keeps the credential pair in three Redis string keys
// sharing a prefix.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/fireme/internal/dashboard/store"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the keys: fireme:credentials:user and so on.
const DefaultPrefix = "fireme:credentials:"

type Store struct {
	client *redis.Client
	prefix string
	sealer *cryptox.Sealer
}

var _ store.Backend = (*Store)(nil)

// Connect parses redisURL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// NewStore wraps client. The Store takes ownership: Close closes client.
func NewStore(client *redis.Client, prefix string, sealer *cryptox.Sealer) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, sealer: sealer}
}

// Client exposes the connection so other Redis consumers (the notice
// stream) can share it.
func (s *Store) Client() *redis.Client { return s.client }

func (s *Store) keys() []string {
	keys := make([]string, len(store.Names))
	for i, name := range store.Names {
		keys[i] = s.prefix + name
	}
	return keys
}

func (s *Store) Load(ctx context.Context) (credstore.Credentials, error) {
	got, err := s.client.MGet(ctx, s.keys()...).Result()
	if err != nil {
		return credstore.Credentials{}, fmt.Errorf("redis: load: %w", err)
	}

	values := make(map[string]string, len(store.Names))
	for i, name := range store.Names {
		if v, ok := got[i].(string); ok {
			values[name] = v
		}
	}
	return store.Decode(values, s.sealer)
}

// Save replaces all keys inside MULTI/EXEC so readers never see a mix of
// old and new values.
func (s *Store) Save(ctx context.Context, c credstore.Credentials) error {
	values, err := store.Encode(c, s.sealer)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys()...)
		for _, name := range store.Names {
			if v, ok := values[name]; ok {
				pipe.Set(ctx, s.prefix+name, v, 0)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.keys()...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis: clear: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
