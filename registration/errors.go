// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

// Validation rules, in the order they are checked
const (
	RuleRequired = "required"
	RuleCollege  = "college"
	RuleEmail    = "email"
	RulePhone    = "phone"
	RuleTeamSize = "team_size"
	RuleMember   = "member"
)

// ValidationError means the submission breaks a rule; nothing was written.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// DuplicateError means the leader or a member is already registered.
// Team is empty when the conflicting team is unknown.
type DuplicateError struct {
	Field   string
	Team    string
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}
