// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ecell-nits/event-registrations/auth"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/notify"
	"github.com/ecell-nits/event-registrations/store"
)

// Store is the part of the record store a registration service needs.
type Store interface {
	FindRegistration(ctx context.Context, event, email string) (*models.Registration, error)
	FindRegistrationByContact(ctx context.Context, event, email, phone string) (*models.Registration, error)
	ListRegistrations(ctx context.Context, event string) ([]models.Registration, error)
	FindMemberRecordsByPhone(ctx context.Context, event string, phones []string) ([]models.MemberRecord, error)
	RunInTx(ctx context.Context, fn func(w store.Writer) error) error
}

// Timeouts bound every store call and every notification.
// Zero values fall back to the defaults.
type Timeouts struct {
	Store  time.Duration
	Notify time.Duration
}

const (
	DefaultStoreTimeout  = 5 * time.Second
	DefaultNotifyTimeout = 10 * time.Second
)

var ErrEmailRequired = &ValidationError{Rule: RuleRequired, Message: "email is required"}

// Service runs registrations for one event.
type Service struct {
	event    Event
	store    Store
	notifier notify.Notifier
	timeouts Timeouts
	now      func() time.Time
}

func NewService(event Event, st Store, notifier notify.Notifier, timeouts Timeouts) *Service {
	if timeouts.Store <= 0 {
		timeouts.Store = DefaultStoreTimeout
	}
	if timeouts.Notify <= 0 {
		timeouts.Notify = DefaultNotifyTimeout
	}
	return &Service{
		event:    event,
		store:    st,
		notifier: notifier,
		timeouts: timeouts,
		now:      time.Now,
	}
}

func (s *Service) Event() Event {
	return s.event
}

// Register validates the submission, rejects duplicates and commits the
// registration together with its member records. The confirmation email is
// sent after the commit and never affects the result.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Registration, error) {
	reg, err := s.event.Validate(req)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeouts.Store)
	defer cancel()

	existing, err := s.store.FindRegistration(sctx, s.event.Slug, reg.TeamLeaderEmail)
	switch {
	case err == nil:
		return nil, &DuplicateError{
			Field:   "teamLeaderEmail",
			Team:    existing.TeamName,
			Message: "You have already registered for this event.",
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if err := s.checkMembers(sctx, reg); err != nil {
		return nil, err
	}

	reg.ID = auth.NewID()
	reg.CreatedAt = s.now().UTC()
	records := memberRecords(reg)

	err = s.store.RunInTx(sctx, func(w store.Writer) error {
		if err := w.InsertRegistration(sctx, reg); err != nil {
			return err
		}
		return w.InsertMemberRecords(sctx, records)
	})
	if errors.Is(err, store.ErrConflict) {
		// Lost a race with a concurrent submission for the same leader
		return nil, &DuplicateError{
			Field:   "teamLeaderEmail",
			Message: "You have already registered for this event.",
		}
	}
	if err != nil {
		slog.Error("failed to commit registration", "event", s.event.Slug, "team", reg.TeamName, "error", err)
		return nil, err
	}

	slog.Info("registration created",
		"event", s.event.Slug,
		"registration_id", reg.ID,
		"team", reg.TeamName,
		"members", len(reg.TeamMembers),
	)

	s.notify(ctx, notify.ConfirmationEmail(reg.TeamLeaderEmail, s.event.Title, reg.TeamName))

	return reg, nil
}

// checkMembers applies the event's member matching rule against the index.
func (s *Service) checkMembers(ctx context.Context, reg *models.Registration) error {
	if s.event.Match == MatchNone {
		if reg.ViceCaptain == nil {
			return nil
		}
		vc := reg.ViceCaptain
		other, err := s.store.FindRegistrationByContact(ctx, s.event.Slug, deref(vc.Email), deref(vc.Phone))
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return &DuplicateError{
			Field:   "viceCaptain",
			Team:    other.TeamName,
			Message: fmt.Sprintf("Vice-captain %s is already registered with team %q.", vc.Name, other.TeamName),
		}
	}

	// Checked against the same people memberRecords indexes
	submitted := teamPeople(reg)

	var phones []string
	seen := map[string]bool{}
	for _, m := range submitted {
		if p := deref(m.Phone); p != "" && !seen[p] {
			seen[p] = true
			phones = append(phones, p)
		}
	}
	if len(phones) == 0 {
		return nil
	}

	records, err := s.store.FindMemberRecordsByPhone(ctx, s.event.Slug, phones)
	if err != nil {
		return err
	}

	for _, m := range submitted {
		for _, rec := range records {
			if !s.event.Match.matches(m, rec) {
				continue
			}
			return &DuplicateError{
				Field: "teamMembers",
				Team:  rec.TeamName,
				Message: fmt.Sprintf("Member %s (%s) is already registered with team %q.",
					m.Name, deref(m.Phone), rec.TeamName),
			}
		}
	}
	return nil
}

func (m MatchRule) matches(member models.Member, rec models.MemberRecord) bool {
	phone := deref(member.Phone)
	if phone == "" || phone != deref(rec.MemberPhone) {
		return false
	}
	switch m {
	case MatchPhone:
		return true
	case MatchNameAndPhone:
		return strings.EqualFold(strings.TrimSpace(member.Name), strings.TrimSpace(rec.MemberName))
	default:
		return false
	}
}

// teamPeople lists the leader, vice-captain, then members.
func teamPeople(reg *models.Registration) []models.Member {
	leaderEmail, leaderPhone := reg.TeamLeaderEmail, reg.TeamLeaderPhone
	people := []models.Member{{Name: reg.TeamLeaderName, Email: &leaderEmail, Phone: &leaderPhone}}
	if reg.ViceCaptain != nil {
		people = append(people, *reg.ViceCaptain)
	}
	return append(people, reg.TeamMembers...)
}

// memberRecords derives one index row per person in the team.
func memberRecords(reg *models.Registration) []models.MemberRecord {
	people := teamPeople(reg)
	records := make([]models.MemberRecord, 0, len(people))
	for _, p := range people {
		records = append(records, models.MemberRecord{
			ID:             auth.NewID(),
			Event:          reg.Event,
			RegistrationID: reg.ID,
			MemberName:     p.Name,
			MemberEmail:    p.Email,
			MemberPhone:    p.Phone,
			TeamName:       reg.TeamName,
		})
	}
	return records
}

// List returns every registration of the event.
func (s *Service) List(ctx context.Context) ([]models.Registration, error) {
	sctx, cancel := context.WithTimeout(ctx, s.timeouts.Store)
	defer cancel()
	return s.store.ListRegistrations(sctx, s.event.Slug)
}

// Check returns the registration led by email, or nil when there is none.
func (s *Service) Check(ctx context.Context, email string) (*models.Registration, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeouts.Store)
	defer cancel()

	reg, err := s.store.FindRegistration(sctx, s.event.Slug, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return reg, err
}

// Get is Check under its single-record name.
func (s *Service) Get(ctx context.Context, email string) (*models.Registration, error) {
	return s.Check(ctx, email)
}

// Delete removes the registration led by email and its member records,
// then tells the leader. Returns store.ErrNotFound when there is none.
func (s *Service) Delete(ctx context.Context, email string) (*models.Registration, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeouts.Store)
	defer cancel()

	reg, err := s.store.FindRegistration(sctx, s.event.Slug, email)
	if err != nil {
		return nil, err
	}

	var removed int64
	err = s.store.RunInTx(sctx, func(w store.Writer) error {
		n, err := w.DeleteMemberRecords(sctx, reg.ID)
		if err != nil {
			return err
		}
		removed = n
		return w.DeleteRegistration(sctx, s.event.Slug, reg.ID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("registration deleted",
		"event", s.event.Slug,
		"registration_id", reg.ID,
		"team", reg.TeamName,
		"member_records", removed,
	)

	s.notify(ctx, notify.DeletionEmail(reg.TeamLeaderEmail, s.event.Title))

	return reg, nil
}

// notify is best-effort and outlives a canceled request.
func (s *Service) notify(ctx context.Context, email notify.Email) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.Notify)
	defer cancel()

	if !s.notifier.SendEmail(nctx, email) {
		slog.Warn("notification not delivered", "event", s.event.Slug, "to", email.To, "subject", email.Subject)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
