// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/ecell-nits/event-registrations/models"
)

// ReplaceOTP removes every code issued to entry.Email and stores entry, in
// one transaction. It reports how many codes were superseded. ErrConflict
// means a concurrent ReplaceOTP for the same email committed first.
func (s *Store) ReplaceOTP(ctx context.Context, entry *models.OTPEntry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrap("begin", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM otp WHERE email = $1`, entry.Email)
	if err != nil {
		return 0, wrap("delete otps", err)
	}
	superseded, err := affected(res)
	if err != nil {
		return 0, wrap("delete otps", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO otp (id, email, otp, created_at)
		VALUES ($1, $2, $3, $4)
	`, entry.ID, entry.Email, entry.OTP, entry.CreatedAt)
	if isUniqueViolation(err) {
		return 0, ErrConflict
	}
	if err != nil {
		return 0, wrap("insert otp", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, wrap("commit", err)
	}
	return superseded, nil
}

// FindOTPByEmail returns the live code issued to email, or ErrNotFound.
func (s *Store) FindOTPByEmail(ctx context.Context, email string) (*models.OTPEntry, error) {
	return s.findOTP(ctx, "find otp", `
		SELECT id, email, otp, created_at FROM otp WHERE email = $1
	`, email)
}

func (s *Store) FindOTPByID(ctx context.Context, id string) (*models.OTPEntry, error) {
	return s.findOTP(ctx, "find otp by id", `
		SELECT id, email, otp, created_at FROM otp WHERE id = $1
	`, id)
}

func (s *Store) findOTP(ctx context.Context, op, query string, arg string) (*models.OTPEntry, error) {
	var entry models.OTPEntry
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&entry.ID, &entry.Email, &entry.OTP, &entry.CreatedAt)
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return &entry, nil
}

// DeleteOTPByID removes one issuance, or returns ErrNotFound when it is
// already gone.
func (s *Store) DeleteOTPByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM otp WHERE id = $1`, id)
	if err != nil {
		return wrap("delete otp", err)
	}
	n, err := affected(res)
	if err != nil {
		return wrap("delete otp", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
