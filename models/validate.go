package models

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone reports whether s is exactly 10 digits
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}
