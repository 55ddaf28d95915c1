// Package store holds what the durable credential backends share: the
// fixed record names and the encoding of a credential pair into them.
// Concrete drivers (sqlite, redis) live under drivers/.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/cryptox"
)

// Record names. Each backend stores exactly these three values.
const (
	NameUser    = "user"
	NameAccess  = "access"
	NameRefresh = "refresh"
)

// Names lists the record names in a stable order.
var Names = []string{NameUser, NameAccess, NameRefresh}

var ErrCorruptRecord = errors.New("store: corrupt credential record")

// Backend is a credstore.Backend that owns a connection.
type Backend interface {
	credstore.Backend

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

// Encode turns c into name/value pairs. Empty fields are left out. When
// sealer is non-nil every value is sealed, labelled with its name.
func Encode(c credstore.Credentials, sealer *cryptox.Sealer) (map[string]string, error) {
	values := make(map[string]string, len(Names))
	if c.Identity != nil {
		raw, err := json.Marshal(c.Identity)
		if err != nil {
			return nil, fmt.Errorf("store: encode identity: %w", err)
		}
		values[NameUser] = string(raw)
	}
	if c.Access != "" {
		values[NameAccess] = c.Access
	}
	if c.Refresh != "" {
		values[NameRefresh] = c.Refresh
	}

	if sealer == nil {
		return values, nil
	}
	for name, v := range values {
		sealed, err := sealer.Seal(v, name)
		if err != nil {
			return nil, err
		}
		values[name] = sealed
	}
	return values, nil
}

// Decode is the inverse of Encode. Missing names decode to empty fields.
func Decode(values map[string]string, sealer *cryptox.Sealer) (credstore.Credentials, error) {
	get := func(name string) (string, error) {
		v := values[name]
		if v == "" || sealer == nil {
			return v, nil
		}
		plain, err := sealer.Open(v, name)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrCorruptRecord, name, err)
		}
		return plain, nil
	}

	var c credstore.Credentials
	var err error
	if c.Access, err = get(NameAccess); err != nil {
		return credstore.Credentials{}, err
	}
	if c.Refresh, err = get(NameRefresh); err != nil {
		return credstore.Credentials{}, err
	}

	user, err := get(NameUser)
	if err != nil {
		return credstore.Credentials{}, err
	}
	if user != "" {
		var id credstore.Identity
		if err := json.Unmarshal([]byte(user), &id); err != nil {
			return credstore.Credentials{}, fmt.Errorf("%w: %s: %w", ErrCorruptRecord, NameUser, err)
		}
		c.Identity = &id
	}
	return c, nil
}
