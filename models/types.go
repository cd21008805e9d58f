package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// College type constants
const (
	CollegeNITSilchar = "nit_silchar"
	CollegeOther      = "other"
)

// FlexString accepts a JSON string, number or null.
// Form frontends send phone numbers and years either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// Request types

type MemberRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     FlexString `json:"phone"`
	ScholarID FlexString `json:"scholarId"`
}

type RegisterRequest struct {
	TeamName            string          `json:"teamName"`
	TeamLeaderName      string          `json:"teamLeaderName"`
	TeamLeaderEmail     string          `json:"teamLeaderEmail"`
	TeamLeaderPhone     FlexString      `json:"teamLeaderPhone"`
	TeamLeaderScholarID FlexString      `json:"teamLeaderScholarId"`
	CollegeType         string          `json:"collegeType"`
	CollegeName         string          `json:"collegeName"`
	Department          string          `json:"department"`
	Year                FlexString      `json:"year"`
	ViceCaptain         *MemberRequest  `json:"viceCaptain,omitempty"`
	TeamMembers         []MemberRequest `json:"teamMembers"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string     `json:"email"`
	OTP   FlexString `json:"otp"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message      string       `json:"message"`
	Registration Registration `json:"registration"`
}

type ListResponse struct {
	Message       string         `json:"message"`
	Count         int            `json:"count"`
	Registrations []Registration `json:"registrations"`
}

type CheckResponse struct {
	Message      string        `json:"message"`
	Registered   bool          `json:"registered"`
	Registration *Registration `json:"registration"`
}

type SingleResponse struct {
	Message      string       `json:"message"`
	Registration Registration `json:"registration"`
}

type DeleteResponse struct {
	Message string       `json:"message"`
	Deleted Registration `json:"deleted"`
}

// Domain types

type Member struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	ScholarID *string `json:"scholarId"`
}

type Registration struct {
	ID                  string    `json:"id"`
	Event               string    `json:"event"`
	TeamName            string    `json:"teamName"`
	TeamLeaderName      string    `json:"teamLeaderName"`
	TeamLeaderEmail     string    `json:"teamLeaderEmail"`
	TeamLeaderPhone     string    `json:"teamLeaderPhone"`
	TeamLeaderScholarID *string   `json:"teamLeaderScholarId"`
	CollegeType         string    `json:"collegeType"`
	CollegeName         *string   `json:"collegeName"`
	Department          string    `json:"department"`
	Year                string    `json:"year"`
	ViceCaptain         *Member   `json:"viceCaptain,omitempty"`
	TeamMembers         []Member  `json:"teamMembers"`
	CreatedAt           time.Time `json:"createdAt"`
}

// MemberRecord is the flat per-person index used for duplicate checks.
// One row per leader, vice-captain and member of every team.
type MemberRecord struct {
	ID             string  `json:"id"`
	Event          string  `json:"event"`
	RegistrationID string  `json:"registrationId"`
	MemberName     string  `json:"memberName"`
	MemberEmail    *string `json:"memberEmail"`
	MemberPhone    *string `json:"memberPhone"`
	TeamName       string  `json:"teamName"`
}

type OTPEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	OTP       string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
