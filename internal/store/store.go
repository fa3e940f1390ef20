// Package store provides the durable, address-keyed record store. Every
// engine operation runs inside a single write transaction, which is what
// makes settlement all-or-nothing.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
	"go.uber.org/zap"
)

type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the SQLite database at the given path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Serialized units: one writer at a time, per the execution model.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// DB exposes the raw connection for read-only queries outside an operation.
func (s *Store) DB() *sqlx.DB {
	return s.conn
}

// WithinTx runs fn inside a transaction. Any error rolls the whole unit back
// with zero durable effects.
func (s *Store) WithinTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().With(zap.Error(rbErr)).Error("Store: Failed to roll back")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS marketplaces (
		address TEXT PRIMARY KEY,
		authority TEXT NOT NULL,
		treasury_mint TEXT NOT NULL,
		fee_basis_points INTEGER NOT NULL,
		fee_account TEXT NOT NULL,
		fee_withdrawal_account TEXT NOT NULL,
		treasury_account TEXT NOT NULL,
		treasury_withdrawal_account TEXT NOT NULL,
		salt INTEGER NOT NULL,
		fee_salt INTEGER NOT NULL,
		treasury_salt INTEGER NOT NULL,
		requires_sign_off INTEGER NOT NULL,
		UNIQUE (authority, treasury_mint)
	);

	CREATE TABLE IF NOT EXISTS trade_states (
		address TEXT PRIMARY KEY,
		side TEXT NOT NULL,
		owner TEXT NOT NULL,
		marketplace TEXT NOT NULL,
		asset TEXT NOT NULL,
		price INTEGER NOT NULL,
		salt INTEGER NOT NULL,
		escrow_salt INTEGER NOT NULL DEFAULT 0,
		deposit INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS escrows (
		address TEXT PRIMARY KEY,
		marketplace TEXT NOT NULL,
		bidder TEXT NOT NULL,
		salt INTEGER NOT NULL,
		UNIQUE (marketplace, bidder)
	);

	CREATE TABLE IF NOT EXISTS accounts (
		address TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0,
		reserved INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.conn.Exec(schema)
	return err
}
