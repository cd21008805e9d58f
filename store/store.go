// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ecell-nits/event-registrations/models"
)

// Store is the record store over database/sql.
// Reads run directly on the pool; writes go through RunInTx.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Writer performs writes inside a transaction started by RunInTx.
type Writer interface {
	InsertRegistration(ctx context.Context, reg *models.Registration) error
	InsertMemberRecords(ctx context.Context, records []models.MemberRecord) error
	DeleteRegistration(ctx context.Context, event, id string) error
	DeleteMemberRecords(ctx context.Context, registrationID string) (int64, error)
}

// RunInTx executes fn in a transaction. Every write made through the Writer
// is rolled back if fn returns an error or the commit fails.
func (s *Store) RunInTx(ctx context.Context, fn func(w Writer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin", err)
	}
	defer tx.Rollback()

	if err := fn(&txWriter{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrap("commit", err)
	}
	return nil
}

type txWriter struct {
	q queryer
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
