// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// OTP codes are six digits and never start with zero
const (
	OTPMin = 100000
	OTPMax = 999999
)

// NewID returns a random UUID string used as a record identity
func NewID() string {
	return uuid.NewString()
}

// GenerateOTP returns a uniformly random code in [OTPMin, OTPMax]
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OTPMax-OTPMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+OTPMin), nil
}

// GenerateAdminKey creates an HMAC-based admin key for an event
// This is deterministic and verifiable
func GenerateAdminKey(event, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(event))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the event
func ValidateAdminKey(event, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(event, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
