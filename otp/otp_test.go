// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package otp

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ecell-nits/event-registrations/auth"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/store"
	"github.com/ecell-nits/event-registrations/testutil"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, *store.Store, *testutil.Notifier) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	n := testutil.NewNotifier()
	svc := NewService(st, n, Config{TTL: ttl})
	t.Cleanup(svc.Close)
	return svc, st, n
}

// wrongCode returns a valid-looking code that differs from code
func wrongCode(code string) string {
	n, _ := strconv.Atoi(code)
	if n == auth.OTPMax {
		return strconv.Itoa(auth.OTPMin)
	}
	return strconv.Itoa(n + 1)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc, _, n := newTestService(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	require.Equal(t, 1, svc.pending())

	email, ok := n.Last("a@x.com")
	require.True(t, ok)
	require.Equal(t, "OTP for verification", email.Subject)
	code := n.LastCode(t, "a@x.com")

	require.NoError(t, svc.Verify(ctx, "a@x.com", code))
	require.Zero(t, svc.pending())

	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", code), ErrOTPNotFound)
}

func TestVerify_MismatchKeepsCode(t *testing.T) {
	svc, _, n := newTestService(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := n.LastCode(t, "a@x.com")

	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", wrongCode(code)), ErrOTPMismatch)
	require.NoError(t, svc.Verify(ctx, "a@x.com", code))
}

func TestIssue_Supersedes(t *testing.T) {
	svc, _, n := newTestService(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	first := n.LastCode(t, "a@x.com")

	// Codes are random; reissue until the second one differs
	second := first
	for second == first {
		require.NoError(t, svc.Issue(ctx, "a@x.com"))
		second = n.LastCode(t, "a@x.com")
	}

	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", first), ErrOTPMismatch)
	require.NoError(t, svc.Verify(ctx, "a@x.com", second))
}

func TestIssue_ConcurrentLeavesOneLiveCode(t *testing.T) {
	svc, st, n := newTestService(t, time.Minute)
	ctx := context.Background()

	const issuers = 10
	var wg sync.WaitGroup
	errs := make([]error, issuers)
	for i := 0; i < issuers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Issue(ctx, "a@x.com")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	live, err := st.FindOTPByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	codes := n.Codes("a@x.com")
	require.NotEmpty(t, codes)
	verified := 0
	for _, code := range codes {
		if svc.Verify(ctx, "a@x.com", code) == nil {
			verified++
			require.Equal(t, live.OTP, code)
		}
	}
	require.Equal(t, 1, verified, "exactly one mailed code may verify")
}

// conflictStore fails the first few replaces the way a concurrent
// issuance committing first would.
type conflictStore struct {
	*store.Store
	conflicts int
	calls     int
}

func (c *conflictStore) ReplaceOTP(ctx context.Context, entry *models.OTPEntry) (int64, error) {
	c.calls++
	if c.calls <= c.conflicts {
		return 0, store.ErrConflict
	}
	return c.Store.ReplaceOTP(ctx, entry)
}

func TestIssue_RetriesReplaceConflict(t *testing.T) {
	tests := []struct {
		name      string
		conflicts int
		wantErr   error
		wantCalls int
	}{
		{"no conflict", 0, nil, 1},
		{"recovers", replaceAttempts - 1, nil, replaceAttempts},
		{"gives up", replaceAttempts, store.ErrConflict, replaceAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &conflictStore{Store: store.New(testutil.SetupTestDB(t)), conflicts: tt.conflicts}
			n := testutil.NewNotifier()
			svc := NewService(cs, n, Config{TTL: time.Minute})
			t.Cleanup(svc.Close)

			err := svc.Issue(context.Background(), "a@x.com")
			require.Equal(t, tt.wantCalls, cs.calls)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, n.Emails(), "no email for a code that was never stored")
				return
			}
			require.NoError(t, err)
			require.NoError(t, svc.Verify(context.Background(), "a@x.com", n.LastCode(t, "a@x.com")))
		})
	}
}

func TestIssue_Expires(t *testing.T) {
	svc, st, n := newTestService(t, 20*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := n.LastCode(t, "a@x.com")

	gone := testutil.Eventually(t, 2*time.Second, func() bool {
		_, err := st.FindOTPByEmail(ctx, "a@x.com")
		return errors.Is(err, store.ErrNotFound)
	})
	require.True(t, gone, "code should expire")
	require.Zero(t, svc.pending())

	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", code), ErrOTPNotFound)
}

func TestExpire_StaleTimerKeepsNewerCode(t *testing.T) {
	svc, st, n := newTestService(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	stale, err := st.FindOTPByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := n.LastCode(t, "a@x.com")

	// Fire the first issuance's timer by hand
	svc.expire(stale.ID)

	current, err := st.FindOTPByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, stale.ID, current.ID)
	require.NoError(t, svc.Verify(ctx, "a@x.com", code))
}

func TestIssue_NotifierFailureStillIssues(t *testing.T) {
	svc, st, n := newTestService(t, time.Minute)
	n.Fail.Store(true)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	_, err := st.FindOTPByEmail(ctx, "a@x.com")
	require.NoError(t, err)
}

func TestInputValidation(t *testing.T) {
	svc, _, n := newTestService(t, time.Minute)
	ctx := context.Background()

	require.ErrorIs(t, svc.Issue(ctx, "not-an-email"), ErrInvalidEmail)
	require.ErrorIs(t, svc.Issue(ctx, ""), ErrInvalidEmail)
	require.Empty(t, n.Emails())

	require.ErrorIs(t, svc.Verify(ctx, "bad", "123456"), ErrInvalidEmail)
	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", " "), ErrOTPRequired)
	require.ErrorIs(t, svc.Verify(ctx, "a@x.com", "123456"), ErrOTPNotFound)
}

func TestVerify_ConcurrentSingleUse(t *testing.T) {
	svc, _, n := newTestService(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	code := n.LastCode(t, "a@x.com")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Verify(ctx, "a@x.com", code) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ok)
}

func TestClose_StopsTimers(t *testing.T) {
	svc, st, _ := newTestService(t, 30*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "a@x.com"))
	svc.Close()
	require.Zero(t, svc.pending())

	time.Sleep(80 * time.Millisecond)
	_, err := st.FindOTPByEmail(ctx, "a@x.com")
	require.NoError(t, err, "closed service must not expire codes")

	require.NoError(t, svc.Issue(ctx, "b@x.com"))
	require.Zero(t, svc.pending())
}
