// Package sqlite keeps the credential pair in a local SQLite file, one row
// per record name.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/fireme/internal/dashboard/store"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/cryptox"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	now    func() time.Time
}

var _ store.Backend = (*Store)(nil)

// DSN builds a modernc DSN for path with a busy timeout and WAL journaling.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// NewStore opens dsn. sealer may be nil to store values in the clear.
// Call ApplyMigrations before use.
func NewStore(dsn string, sealer *cryptox.Sealer) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer keeps SQLITE_BUSY out of concurrent SetAuth calls.
	db.SetMaxOpenConns(1)

	return &Store{db: db, sealer: sealer, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context) (credstore.Credentials, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM credentials`)
	if err != nil {
		return credstore.Credentials{}, fmt.Errorf("sqlite: load: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(store.Names))
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return credstore.Credentials{}, fmt.Errorf("sqlite: load: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return credstore.Credentials{}, fmt.Errorf("sqlite: load: %w", err)
	}

	return store.Decode(values, s.sealer)
}

// Save replaces every record in one transaction.
func (s *Store) Save(ctx context.Context, c credstore.Credentials) error {
	values, err := store.Encode(c, s.sealer)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
			return err
		}
		now := s.now().UTC()
		for _, name := range store.Names {
			v, ok := values[name]
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO credentials (name, value, updated_at) VALUES (?, ?, ?)`,
				name, v, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("sqlite: save: %w", err)
	}
	return tx.Commit()
}
