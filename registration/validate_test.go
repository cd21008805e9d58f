// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/testutil"
)

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		mutate  func(*models.RegisterRequest)
		rule    string
		message string
	}{
		{
			name:    "missing team name",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.TeamName = "  " },
			rule:    RuleRequired,
			message: "teamName is required",
		},
		{
			name:    "missing department",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.Department = "" },
			rule:    RuleRequired,
			message: "department is required",
		},
		{
			name:   "department optional for bid-wise",
			event:  BidWise,
			mutate: func(r *models.RegisterRequest) { r.Department = ""; r.Year = "" },
		},
		{
			name:    "missing vice-captain",
			event:   Treasure,
			mutate:  func(r *models.RegisterRequest) { r.ViceCaptain = nil },
			rule:    RuleRequired,
			message: "viceCaptain is required",
		},
		{
			name:    "unknown college type",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.CollegeType = "iit" },
			rule:    RuleCollege,
			message: "collegeType must be one of nit_silchar, other",
		},
		{
			name:    "missing college name",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.CollegeName = "" },
			rule:    RuleCollege,
			message: "collegeName is required when collegeType is other",
		},
		{
			name: "missing leader scholar id",
			event: Business,
			mutate: func(r *models.RegisterRequest) {
				r.CollegeType = models.CollegeNITSilchar
				r.TeamLeaderScholarID = ""
			},
			rule:    RuleCollege,
			message: "teamLeaderScholarId is required for NIT Silchar students",
		},
		{
			name:    "bad email",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.TeamLeaderEmail = "not-an-email" },
			rule:    RuleEmail,
			message: "teamLeaderEmail is not a valid email address",
		},
		{
			name:    "short phone",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.TeamLeaderPhone = "12345" },
			rule:    RulePhone,
			message: "teamLeaderPhone must be exactly 10 digits",
		},
		{
			name:    "too few members",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.TeamMembers = r.TeamMembers[:1] },
			rule:    RuleTeamSize,
			message: "team must have 2 to 4 members besides the leader",
		},
		{
			name:  "too many treasure members",
			event: Treasure,
			mutate: func(r *models.RegisterRequest) {
				r.TeamMembers = append(r.TeamMembers, r.TeamMembers[0], r.TeamMembers[0])
			},
			rule:    RuleTeamSize,
			message: "team must have 1 to 3 members besides the leader and vice-captain",
		},
		{
			name:    "member without phone",
			event:   Business,
			mutate:  func(r *models.RegisterRequest) { r.TeamMembers[1].Phone = "" },
			rule:    RuleMember,
			message: "member 2: phone is required",
		},
		{
			name:   "treasure member without phone",
			event:  Treasure,
			mutate: func(r *models.RegisterRequest) { r.TeamMembers[0].Phone = "" },
		},
		{
			name:    "bid-wise member without email",
			event:   BidWise,
			mutate:  func(r *models.RegisterRequest) { r.TeamMembers[0].Email = "" },
			rule:    RuleMember,
			message: "member 1: email is required",
		},
		{
			name: "member without scholar id",
			event: Business,
			mutate: func(r *models.RegisterRequest) {
				*r = testutil.NITTeamRequest(r.TeamName, r.TeamLeaderEmail, 2)
				r.TeamMembers[0].ScholarID = ""
			},
			rule:    RuleMember,
			message: "member 1: scholarId is required for NIT Silchar students",
		},
		{
			name: "required fields checked before college",
			event: Business,
			mutate: func(r *models.RegisterRequest) {
				r.CollegeName = ""
				r.TeamLeaderName = ""
			},
			rule:    RuleRequired,
			message: "teamLeaderName is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.TeamRequest("Falcons", "a@x.com", 2)
			if tt.event.RequireViceCaptain {
				req = testutil.WithViceCaptain(req)
			}
			tt.mutate(&req)

			reg, err := tt.event.Validate(req)
			if tt.rule == "" {
				require.NoError(t, err)
				require.NotNil(t, reg)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			require.Equal(t, tt.rule, verr.Rule)
			require.Equal(t, tt.message, verr.Message)
			require.Nil(t, reg)
		})
	}
}

func TestValidate_NullNormalization(t *testing.T) {
	t.Run("other drops scholar ids", func(t *testing.T) {
		req := testutil.TeamRequest("Falcons", "a@x.com", 2)
		req.TeamLeaderScholarID = "2212001"
		req.TeamMembers[0].ScholarID = "2212002"

		reg, err := Business.Validate(req)
		require.NoError(t, err)
		require.Nil(t, reg.TeamLeaderScholarID)
		require.Nil(t, reg.TeamMembers[0].ScholarID)
		require.Equal(t, "ABC College", *reg.CollegeName)
	})

	t.Run("nit drops college name", func(t *testing.T) {
		req := testutil.NITTeamRequest("Falcons", "a@x.com", 2)
		req.CollegeName = "ignored"

		reg, err := Business.Validate(req)
		require.NoError(t, err)
		require.Nil(t, reg.CollegeName)
		require.Equal(t, "2212001", *reg.TeamLeaderScholarID)
		require.NotNil(t, reg.TeamMembers[0].ScholarID)
	})

	t.Run("empty member email is nil", func(t *testing.T) {
		req := testutil.TeamRequest("Falcons", "a@x.com", 2)
		req.TeamMembers[0].Email = " "

		reg, err := Business.Validate(req)
		require.NoError(t, err)
		require.Nil(t, reg.TeamMembers[0].Email)
	})
}

var (
	nameGen  = rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,18}[A-Za-z]`)
	phoneGen = rapid.StringMatching(`[0-9]{10}`)
	emailGen = rapid.StringMatching(`[a-z]{1,10}@[a-z]{1,10}\.(com|in|org)`)
)

func genRequest(rt *rapid.T, e Event) models.RegisterRequest {
	nit := rapid.Bool().Draw(rt, "nit")
	req := models.RegisterRequest{
		TeamName:        nameGen.Draw(rt, "teamName"),
		TeamLeaderName:  nameGen.Draw(rt, "leaderName"),
		TeamLeaderEmail: emailGen.Draw(rt, "leaderEmail"),
		TeamLeaderPhone: models.FlexString(phoneGen.Draw(rt, "leaderPhone")),
		Department:      nameGen.Draw(rt, "department"),
		Year:            models.FlexString(rapid.StringMatching(`[1-5]`).Draw(rt, "year")),
		CollegeType:     models.CollegeOther,
		CollegeName:     nameGen.Draw(rt, "collegeName"),
	}
	if nit {
		req.CollegeType = models.CollegeNITSilchar
		req.TeamLeaderScholarID = models.FlexString(rapid.StringMatching(`[0-9]{7}`).Draw(rt, "scholarId"))
	}
	if e.RequireViceCaptain {
		req.ViceCaptain = &models.MemberRequest{
			Name:      nameGen.Draw(rt, "vcName"),
			Email:     emailGen.Draw(rt, "vcEmail"),
			Phone:     models.FlexString(phoneGen.Draw(rt, "vcPhone")),
			ScholarID: models.FlexString(rapid.StringMatching(`[0-9]{7}`).Draw(rt, "vcScholarId")),
		}
	}
	n := rapid.IntRange(e.MinMembers, e.MaxMembers).Draw(rt, "members")
	for i := 0; i < n; i++ {
		req.TeamMembers = append(req.TeamMembers, models.MemberRequest{
			Name:      nameGen.Draw(rt, "memberName"),
			Email:     emailGen.Draw(rt, "memberEmail"),
			Phone:     models.FlexString(phoneGen.Draw(rt, "memberPhone")),
			ScholarID: models.FlexString(rapid.StringMatching(`[0-9]{7}`).Draw(rt, "memberScholarId")),
		})
	}
	return req
}

func TestValidate_ValidInputsRoundTrip(t *testing.T) {
	for _, e := range Events() {
		t.Run(e.Slug, func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				req := genRequest(rt, e)

				reg, err := e.Validate(req)
				require.NoError(rt, err)

				require.Equal(rt, e.Slug, reg.Event)
				require.Equal(rt, req.TeamName, reg.TeamName)
				require.Equal(rt, req.TeamLeaderName, reg.TeamLeaderName)
				require.Equal(rt, req.TeamLeaderEmail, reg.TeamLeaderEmail)
				require.Equal(rt, req.TeamLeaderPhone.String(), reg.TeamLeaderPhone)
				require.Equal(rt, req.CollegeType, reg.CollegeType)
				require.Len(rt, reg.TeamMembers, len(req.TeamMembers))

				nit := req.CollegeType == models.CollegeNITSilchar
				if nit {
					require.Nil(rt, reg.CollegeName)
					require.Equal(rt, req.TeamLeaderScholarID.String(), *reg.TeamLeaderScholarID)
				} else {
					require.Nil(rt, reg.TeamLeaderScholarID)
					require.Equal(rt, req.CollegeName, *reg.CollegeName)
				}
				for i, m := range reg.TeamMembers {
					require.Equal(rt, req.TeamMembers[i].Name, m.Name)
					require.Equal(rt, req.TeamMembers[i].Phone.String(), *m.Phone)
					require.Equal(rt, nit, m.ScholarID != nil)
				}
				require.Equal(rt, e.RequireViceCaptain, reg.ViceCaptain != nil)
			})
		})
	}
}

func TestValidate_MissingCollegeNameAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := genRequest(rt, Business)
		req.CollegeType = models.CollegeOther
		req.CollegeName = strings.Repeat(" ", rapid.IntRange(0, 3).Draw(rt, "spaces"))

		_, err := Business.Validate(req)
		var verr *ValidationError
		require.ErrorAs(rt, err, &verr)
		require.Equal(rt, RuleCollege, verr.Rule)
	})
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("bid-wise")
	require.True(t, ok)
	require.Equal(t, BidWise, e)

	_, ok = Lookup("chess")
	require.False(t, ok)

	require.Equal(t, "name+phone", Adovation.Match.String())
	require.Equal(t, "unknown", MatchRule(42).String())
}
