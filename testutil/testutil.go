// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecell-nits/event-registrations/cliparse"
	"github.com/ecell-nits/event-registrations/db"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/notify"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// The database is closed when the test completes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   "file:test.db",
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		MockEmail:     true,
		OTPTTL:        cliparse.DefaultOTPTTL,
		StoreTimeout:  cliparse.DefaultStoreTimeout,
		NotifyTimeout: cliparse.DefaultNotifyTimeout,
	}
}

// Notifier records every email instead of sending it.
// Set Fail to make every send report failure.
type Notifier struct {
	mu     sync.Mutex
	emails []notify.Email
	Fail   atomic.Bool
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) SendEmail(ctx context.Context, email notify.Email) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, email)
	return !n.Fail.Load()
}

// Emails returns a copy of every email sent so far
func (n *Notifier) Emails() []notify.Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Email(nil), n.emails...)
}

// Last returns the most recent email to the address
func (n *Notifier) Last(to string) (notify.Email, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.emails) - 1; i >= 0; i-- {
		if n.emails[i].To == to {
			return n.emails[i], true
		}
	}
	return notify.Email{}, false
}

var codePattern = regexp.MustCompile(`\b[1-9][0-9]{5}\b`)

// LastCode extracts the one-time code from the latest email to the address
func (n *Notifier) LastCode(t *testing.T, to string) string {
	t.Helper()
	email, ok := n.Last(to)
	if !ok {
		t.Fatalf("no email sent to %s", to)
	}
	code := codePattern.FindString(email.Text)
	if code == "" {
		t.Fatalf("no code in email to %s: %q", to, email.Text)
	}
	return code
}

// Codes returns every distinct code mailed to the address, oldest first
func (n *Notifier) Codes(to string) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, email := range n.Emails() {
		code := codePattern.FindString(email.Text)
		if email.To != to || code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

var phoneSeq atomic.Int64

// NextPhone returns a distinct valid 10-digit phone number
func NextPhone() string {
	return fmt.Sprintf("9%09d", phoneSeq.Add(1))
}

// TeamRequest builds a valid submission with n members from another college.
// Every phone number is fresh.
func TeamRequest(teamName, leaderEmail string, n int) models.RegisterRequest {
	req := models.RegisterRequest{
		TeamName:        teamName,
		TeamLeaderName:  teamName + " Leader",
		TeamLeaderEmail: leaderEmail,
		TeamLeaderPhone: models.FlexString(NextPhone()),
		CollegeType:     models.CollegeOther,
		CollegeName:     "ABC College",
		Department:      "Mechanical",
		Year:            "2",
	}
	for i := 0; i < n; i++ {
		req.TeamMembers = append(req.TeamMembers, models.MemberRequest{
			Name:  fmt.Sprintf("%s Member %d", teamName, i+1),
			Email: fmt.Sprintf("member%d.%s", i+1, leaderEmail),
			Phone: models.FlexString(NextPhone()),
		})
	}
	return req
}

// NITTeamRequest is TeamRequest for NIT Silchar students, with scholar IDs
func NITTeamRequest(teamName, leaderEmail string, n int) models.RegisterRequest {
	req := TeamRequest(teamName, leaderEmail, n)
	req.CollegeType = models.CollegeNITSilchar
	req.CollegeName = ""
	req.TeamLeaderScholarID = "2212001"
	for i := range req.TeamMembers {
		req.TeamMembers[i].ScholarID = models.FlexString(fmt.Sprintf("22120%02d", i+2))
	}
	return req
}

// WithViceCaptain adds a vice-captain with fresh contact details
func WithViceCaptain(req models.RegisterRequest) models.RegisterRequest {
	req.ViceCaptain = &models.MemberRequest{
		Name:      req.TeamName + " Vice",
		Email:     "vice." + req.TeamLeaderEmail,
		Phone:     models.FlexString(NextPhone()),
		ScholarID: "2212099",
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Eventually polls cond until it returns true or the timeout passes
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
