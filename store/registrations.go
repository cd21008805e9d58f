// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecell-nits/event-registrations/models"
)

const registrationColumns = `id, event, team_name, team_leader_name, team_leader_email,
	team_leader_phone, team_leader_scholar_id, college_type, college_name, department,
	study_year, vice_captain_name, vice_captain_email, vice_captain_phone,
	vice_captain_scholar_id, team_members, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		reg     models.Registration
		vcName  sql.NullString
		vc      models.Member
		members string
	)
	err := row.Scan(
		&reg.ID, &reg.Event, &reg.TeamName, &reg.TeamLeaderName, &reg.TeamLeaderEmail,
		&reg.TeamLeaderPhone, &reg.TeamLeaderScholarID, &reg.CollegeType, &reg.CollegeName,
		&reg.Department, &reg.Year, &vcName, &vc.Email, &vc.Phone, &vc.ScholarID,
		&members, &reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vcName.Valid {
		vc.Name = vcName.String
		reg.ViceCaptain = &vc
	}
	if err := json.Unmarshal([]byte(members), &reg.TeamMembers); err != nil {
		return nil, fmt.Errorf("decode team members of %s: %w", reg.ID, err)
	}
	if reg.TeamMembers == nil {
		reg.TeamMembers = []models.Member{}
	}
	return &reg, nil
}

// FindRegistration returns the registration of the team led by email,
// or ErrNotFound.
func (s *Store) FindRegistration(ctx context.Context, event, email string) (*models.Registration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registration
		WHERE event = $1 AND team_leader_email = $2
	`, event, email)

	reg, err := scanRegistration(row)
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("find registration", err)
	}
	return reg, nil
}

// FindRegistrationByContact returns a registration of the event whose leader
// or vice-captain uses the given email or phone, or ErrNotFound.
// Empty values never match.
func (s *Store) FindRegistrationByContact(ctx context.Context, event, email, phone string) (*models.Registration, error) {
	var conds []string
	args := []any{event}
	if email != "" {
		args = append(args, email)
		n := len(args)
		conds = append(conds, fmt.Sprintf("team_leader_email = $%d OR vice_captain_email = $%d", n, n))
	}
	if phone != "" {
		args = append(args, phone)
		n := len(args)
		conds = append(conds, fmt.Sprintf("team_leader_phone = $%d OR vice_captain_phone = $%d", n, n))
	}
	if len(conds) == 0 {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registration
		WHERE event = $1 AND (`+strings.Join(conds, " OR ")+`)
		ORDER BY created_at
		LIMIT 1
	`, args...)

	reg, err := scanRegistration(row)
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("find registration by contact", err)
	}
	return reg, nil
}

// ListRegistrations returns every registration of the event, oldest first.
func (s *Store) ListRegistrations(ctx context.Context, event string) ([]models.Registration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registration
		WHERE event = $1
		ORDER BY created_at, id
	`, event)
	if err != nil {
		return nil, wrap("list registrations", err)
	}
	defer rows.Close()

	regs := []models.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, wrap("scan registration", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list registrations", err)
	}
	return regs, nil
}

// FindMemberRecordsByPhone returns the member records of the event matching
// any of the given phones.
func (s *Store) FindMemberRecordsByPhone(ctx context.Context, event string, phones []string) ([]models.MemberRecord, error) {
	records := []models.MemberRecord{}
	if len(phones) == 0 {
		return records, nil
	}

	args := make([]any, 0, len(phones)+1)
	args = append(args, event)
	placeholders := make([]string, len(phones))
	for i, p := range phones {
		args = append(args, p)
		placeholders[i] = fmt.Sprintf("$%d", i+2)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event, registration_id, member_name, member_email, member_phone, team_name
		FROM member_record
		WHERE event = $1 AND member_phone IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY team_name, id
	`, args...)
	if err != nil {
		return nil, wrap("find member records", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.MemberRecord
		if err := rows.Scan(&rec.ID, &rec.Event, &rec.RegistrationID, &rec.MemberName,
			&rec.MemberEmail, &rec.MemberPhone, &rec.TeamName); err != nil {
			return nil, wrap("scan member record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("find member records", err)
	}
	return records, nil
}

// ListMemberRecords returns the member records written for a registration.
func (s *Store) ListMemberRecords(ctx context.Context, registrationID string) ([]models.MemberRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event, registration_id, member_name, member_email, member_phone, team_name
		FROM member_record
		WHERE registration_id = $1
		ORDER BY id
	`, registrationID)
	if err != nil {
		return nil, wrap("list member records", err)
	}
	defer rows.Close()

	records := []models.MemberRecord{}
	for rows.Next() {
		var rec models.MemberRecord
		if err := rows.Scan(&rec.ID, &rec.Event, &rec.RegistrationID, &rec.MemberName,
			&rec.MemberEmail, &rec.MemberPhone, &rec.TeamName); err != nil {
			return nil, wrap("scan member record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list member records", err)
	}
	return records, nil
}

// InsertRegistration writes one registration. A second registration with the
// same event and leader email fails with ErrConflict.
func (w *txWriter) InsertRegistration(ctx context.Context, reg *models.Registration) error {
	members := reg.TeamMembers
	if members == nil {
		members = []models.Member{}
	}
	membersJSON, err := json.Marshal(members)
	if err != nil {
		return wrap("encode team members", err)
	}

	var vcName, vcEmail, vcPhone, vcScholar *string
	if vc := reg.ViceCaptain; vc != nil {
		vcName, vcEmail, vcPhone, vcScholar = &vc.Name, vc.Email, vc.Phone, vc.ScholarID
	}

	_, err = w.q.ExecContext(ctx, `
		INSERT INTO registration (`+registrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, reg.ID, reg.Event, reg.TeamName, reg.TeamLeaderName, reg.TeamLeaderEmail,
		reg.TeamLeaderPhone, reg.TeamLeaderScholarID, reg.CollegeType, reg.CollegeName,
		reg.Department, reg.Year, vcName, vcEmail, vcPhone, vcScholar,
		string(membersJSON), reg.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return wrap("insert registration", err)
}

// InsertMemberRecords writes the member index rows of one registration.
func (w *txWriter) InsertMemberRecords(ctx context.Context, records []models.MemberRecord) error {
	for _, rec := range records {
		_, err := w.q.ExecContext(ctx, `
			INSERT INTO member_record (id, event, registration_id, member_name, member_email, member_phone, team_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rec.ID, rec.Event, rec.RegistrationID, rec.MemberName, rec.MemberEmail, rec.MemberPhone, rec.TeamName)
		if err != nil {
			return wrap("insert member record", err)
		}
	}
	return nil
}

func (w *txWriter) DeleteRegistration(ctx context.Context, event, id string) error {
	res, err := w.q.ExecContext(ctx, `
		DELETE FROM registration WHERE event = $1 AND id = $2
	`, event, id)
	if err != nil {
		return wrap("delete registration", err)
	}
	n, err := affected(res)
	if err != nil {
		return wrap("delete registration", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (w *txWriter) DeleteMemberRecords(ctx context.Context, registrationID string) (int64, error) {
	res, err := w.q.ExecContext(ctx, `
		DELETE FROM member_record WHERE registration_id = $1
	`, registrationID)
	if err != nil {
		return 0, wrap("delete member records", err)
	}
	n, err := affected(res)
	if err != nil {
		return 0, wrap("delete member records", err)
	}
	return n, nil
}
