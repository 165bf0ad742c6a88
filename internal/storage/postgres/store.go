package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
)

// Pool is the subset of pgxpool.Pool the store relies on; it keeps the store
// testable against a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Store keeps record sets in a single table keyed by (set_name, user_id) with
// a JSONB payload per user. Save replaces a whole set inside one transaction,
// matching the full-overwrite contract of the file store.
type Store struct {
	pool   Pool
	logger *slog.Logger
}

// New creates the store and initializes its schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	store := &Store{pool: pool, logger: logger}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) initSchema(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS record_sets (
        set_name TEXT NOT NULL,
        user_id TEXT NOT NULL,
        data JSONB NOT NULL,
        PRIMARY KEY (set_name, user_id)
    )`

	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Load reads the full mapping for a record set. An absent set is simply an
// empty mapping; unlike files there is nothing to create up front.
func (s *Store) Load(ctx context.Context, set string) (map[string]json.RawMessage, error) {
	const query = `SELECT user_id, data FROM record_sets WHERE set_name=$1`

	rows, err := s.pool.Query(ctx, query, set)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", domainErrors.ErrStoreFailure, set, err)
	}
	defer rows.Close()

	records := map[string]json.RawMessage{}
	for rows.Next() {
		var userID string
		var data []byte
		if err := rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", domainErrors.ErrStoreFailure, set, err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: set %s user %s", domainErrors.ErrCorruptState, set, userID)
		}
		records[userID] = json.RawMessage(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", domainErrors.ErrStoreFailure, set, err)
	}
	return records, nil
}

// Save overwrites the persisted record set with the given mapping.
func (s *Store) Save(ctx context.Context, set string, records map[string]json.RawMessage) error {
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM record_sets WHERE set_name=$1`, set); err != nil {
			return err
		}
		for userID, data := range records {
			const insert = `INSERT INTO record_sets (set_name, user_id, data) VALUES ($1, $2, $3)`
			if _, err := tx.Exec(ctx, insert, set, userID, []byte(data)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: save %s: %v", domainErrors.ErrStoreFailure, set, err)
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Store) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
