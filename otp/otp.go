// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package otp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ecell-nits/event-registrations/auth"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/notify"
	"github.com/ecell-nits/event-registrations/store"
)

var (
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrOTPRequired  = errors.New("otp is required")
	ErrOTPNotFound  = errors.New("OTP not found")
	ErrOTPMismatch  = errors.New("OTP not matched")
)

const (
	DefaultTTL     = 5 * time.Minute
	defaultTimeout = 5 * time.Second

	// replaceAttempts bounds retries when concurrent issues for one email
	// collide on the unique email index.
	replaceAttempts = 3
)

// Store is the part of the record store the OTP service needs.
type Store interface {
	ReplaceOTP(ctx context.Context, entry *models.OTPEntry) (int64, error)
	FindOTPByEmail(ctx context.Context, email string) (*models.OTPEntry, error)
	FindOTPByID(ctx context.Context, id string) (*models.OTPEntry, error)
	DeleteOTPByID(ctx context.Context, id string) error
}

type Config struct {
	TTL           time.Duration
	StoreTimeout  time.Duration
	NotifyTimeout time.Duration
}

// Service issues and verifies one-time codes. Each issuance gets its own
// expiry timer keyed by the entry ID, so a stale timer can only remove the
// code it was scheduled for.
type Service struct {
	store    Store
	notifier notify.Notifier
	cfg      Config
	now      func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func NewService(st Store, notifier notify.Notifier, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultTimeout
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 2 * defaultTimeout
	}
	return &Service{
		store:    st,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		timers:   make(map[string]*time.Timer),
	}
}

// Issue replaces any live code for email with a new one, mails it and
// schedules its expiry. A failed email does not fail the issuance.
func (s *Service) Issue(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !models.IsEmail(email) {
		return ErrInvalidEmail
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	entry := &models.OTPEntry{
		ID:        auth.NewID(),
		Email:     email,
		OTP:       code,
		CreatedAt: s.now().UTC(),
	}

	// Losing a race to a concurrent issue means that code committed first;
	// retrying supersedes it so the newest request wins.
	var superseded int64
	for attempt := 1; ; attempt++ {
		superseded, err = s.store.ReplaceOTP(sctx, entry)
		if !errors.Is(err, store.ErrConflict) || attempt == replaceAttempts {
			break
		}
		slog.Debug("otp replace conflict, retrying", "email", email, "attempt", attempt)
	}
	if err != nil {
		return err
	}

	slog.Info("otp issued", "email", email, "otp_id", entry.ID, "superseded", superseded)

	nctx, ncancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer ncancel()
	if !s.notifier.SendEmail(nctx, notify.OTPEmail(email, code, s.cfg.TTL)) {
		slog.Warn("otp email not delivered", "email", email, "otp_id", entry.ID)
	}

	s.schedule(entry.ID)
	return nil
}

// Verify consumes the live code for email when otp matches it exactly.
// A mismatch leaves the code in place.
func (s *Service) Verify(ctx context.Context, email, otp string) error {
	email = strings.TrimSpace(email)
	otp = strings.TrimSpace(otp)
	if !models.IsEmail(email) {
		return ErrInvalidEmail
	}
	if otp == "" {
		return ErrOTPRequired
	}

	sctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	entry, err := s.store.FindOTPByEmail(sctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return err
	}

	if entry.OTP != otp {
		slog.Info("otp mismatch", "email", email, "otp_id", entry.ID)
		return ErrOTPMismatch
	}

	// A concurrent Verify may have consumed it first
	if err := s.store.DeleteOTPByID(sctx, entry.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOTPNotFound
		}
		return err
	}
	s.cancel(entry.ID)

	slog.Info("otp verified", "email", email, "otp_id", entry.ID)
	return nil
}

// Close stops every pending expiry timer. Codes issued before Close stay in
// the store until the next Issue for the same email removes them.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// pending reports how many expiry timers are scheduled.
func (s *Service) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Service) schedule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.timers[id] = time.AfterFunc(s.cfg.TTL, func() { s.expire(id) })
}

func (s *Service) cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// expire removes the issuance id if it is still stored. Entries consumed by
// Verify or superseded by a later Issue are already gone.
func (s *Service) expire(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.StoreTimeout)
	defer cancel()

	if _, err := s.store.FindOTPByID(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to look up expiring otp", "otp_id", id, "error", err)
		}
		return
	}

	if err := s.store.DeleteOTPByID(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to expire otp", "otp_id", id, "error", err)
		return
	}
	slog.Info("otp expired", "otp_id", id)
}
