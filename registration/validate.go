// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"fmt"
	"strings"

	"github.com/ecell-nits/event-registrations/models"
)

// Validate checks a submission against the event rules and returns the
// normalized registration. Fields that do not apply to the college type
// are set to nil. ID and CreatedAt are left for the service.
func (e Event) Validate(req models.RegisterRequest) (*models.Registration, error) {
	reg := &models.Registration{
		Event:           e.Slug,
		TeamName:        strings.TrimSpace(req.TeamName),
		TeamLeaderName:  strings.TrimSpace(req.TeamLeaderName),
		TeamLeaderEmail: strings.TrimSpace(req.TeamLeaderEmail),
		TeamLeaderPhone: req.TeamLeaderPhone.String(),
		CollegeType:     strings.TrimSpace(req.CollegeType),
		Department:      strings.TrimSpace(req.Department),
		Year:            req.Year.String(),
	}
	scholarID := req.TeamLeaderScholarID.String()
	collegeName := strings.TrimSpace(req.CollegeName)

	// 1. required top-level fields
	required := []struct {
		name  string
		value string
		need  bool
	}{
		{"teamName", reg.TeamName, true},
		{"teamLeaderName", reg.TeamLeaderName, true},
		{"teamLeaderEmail", reg.TeamLeaderEmail, true},
		{"teamLeaderPhone", reg.TeamLeaderPhone, true},
		{"collegeType", reg.CollegeType, true},
		{"department", reg.Department, e.RequireDepartment},
		{"year", reg.Year, e.RequireYear},
	}
	for _, f := range required {
		if f.need && f.value == "" {
			return nil, invalid(RuleRequired, f.name+" is required")
		}
	}

	var vc *models.MemberRequest
	if e.RequireViceCaptain {
		if req.ViceCaptain == nil {
			return nil, invalid(RuleRequired, "viceCaptain is required")
		}
		vc = req.ViceCaptain
		if strings.TrimSpace(vc.Name) == "" {
			return nil, invalid(RuleRequired, "viceCaptain name is required")
		}
		if strings.TrimSpace(vc.Email) == "" {
			return nil, invalid(RuleRequired, "viceCaptain email is required")
		}
		if vc.Phone.String() == "" {
			return nil, invalid(RuleRequired, "viceCaptain phone is required")
		}
	}

	// 2. college type decides which of collegeName / scholarId apply
	nit := false
	switch reg.CollegeType {
	case models.CollegeOther:
		if collegeName == "" {
			return nil, invalid(RuleCollege, "collegeName is required when collegeType is other")
		}
		reg.CollegeName = &collegeName
	case models.CollegeNITSilchar:
		nit = true
		if scholarID == "" {
			return nil, invalid(RuleCollege, "teamLeaderScholarId is required for NIT Silchar students")
		}
		reg.TeamLeaderScholarID = &scholarID
		if vc != nil && vc.ScholarID.String() == "" {
			return nil, invalid(RuleCollege, "viceCaptain scholarId is required for NIT Silchar students")
		}
	default:
		return nil, invalid(RuleCollege, "collegeType must be one of nit_silchar, other")
	}

	// 3. email
	if !models.IsEmail(reg.TeamLeaderEmail) {
		return nil, invalid(RuleEmail, "teamLeaderEmail is not a valid email address")
	}
	if vc != nil && !models.IsEmail(strings.TrimSpace(vc.Email)) {
		return nil, invalid(RuleEmail, "viceCaptain email is not a valid email address")
	}

	// 4. phone
	if !models.IsPhone(reg.TeamLeaderPhone) {
		return nil, invalid(RulePhone, "teamLeaderPhone must be exactly 10 digits")
	}
	if vc != nil && !models.IsPhone(vc.Phone.String()) {
		return nil, invalid(RulePhone, "viceCaptain phone must be exactly 10 digits")
	}

	// 5. team size
	if n := len(req.TeamMembers); n < e.MinMembers || n > e.MaxMembers {
		return nil, invalid(RuleTeamSize, fmt.Sprintf("team must have %d to %d members besides the %s",
			e.MinMembers, e.MaxMembers, e.leaderLabel()))
	}

	// 6. members
	reg.TeamMembers = make([]models.Member, 0, len(req.TeamMembers))
	for i, m := range req.TeamMembers {
		member, err := e.member(i+1, m, nit)
		if err != nil {
			return nil, err
		}
		reg.TeamMembers = append(reg.TeamMembers, member)
	}

	if vc != nil {
		member := models.Member{
			Name:  strings.TrimSpace(vc.Name),
			Email: optional(vc.Email),
			Phone: optional(vc.Phone.String()),
		}
		if nit {
			member.ScholarID = optional(vc.ScholarID.String())
		}
		reg.ViceCaptain = &member
	}

	return reg, nil
}

func (e Event) member(pos int, m models.MemberRequest, nit bool) (models.Member, error) {
	name := strings.TrimSpace(m.Name)
	email := strings.TrimSpace(m.Email)
	phone := m.Phone.String()
	scholarID := m.ScholarID.String()

	fail := func(format string, args ...any) (models.Member, error) {
		return models.Member{}, invalid(RuleMember, fmt.Sprintf("member %d: ", pos)+fmt.Sprintf(format, args...))
	}

	if name == "" {
		return fail("name is required")
	}
	if e.MemberEmailRequired && email == "" {
		return fail("email is required")
	}
	if email != "" && !models.IsEmail(email) {
		return fail("email is not a valid email address")
	}
	if e.MemberPhoneRequired && phone == "" {
		return fail("phone is required")
	}
	if phone != "" && !models.IsPhone(phone) {
		return fail("phone must be exactly 10 digits")
	}
	if nit && scholarID == "" {
		return fail("scholarId is required for NIT Silchar students")
	}

	member := models.Member{
		Name:  name,
		Email: optional(email),
		Phone: optional(phone),
	}
	if nit {
		member.ScholarID = &scholarID
	}
	return member, nil
}

func (e Event) leaderLabel() string {
	if e.RequireViceCaptain {
		return "leader and vice-captain"
	}
	return "leader"
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
