// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the registration forms.

# Request Types

  - RegisterRequest: team, leader, college, optional viceCaptain, teamMembers
  - MemberRequest: name, email, phone, scholarId
  - EmailRequest: email (check, single, delete, sendOtp)
  - VerifyOTPRequest: email, otp

Phone numbers, scholar IDs, years and codes are FlexString so that forms
may send them either as JSON strings or numbers.

# Response Types

Every response carries a message:

  - MessageResponse: message
  - RegisterResponse: message, registration
  - ListResponse: message, count, registrations
  - CheckResponse: message, registered, registration (null when absent)
  - SingleResponse: message, registration
  - DeleteResponse: message, deleted
  - ErrorResponse: error, message

# Domain Types

  - Registration: one team registration for one event
  - Member: a team member, optional fields are null when not applicable
  - MemberRecord: flat (event, person, team) index row
  - OTPEntry: one issued code; its ID identifies the issuance

# Constants

College types:

	CollegeNITSilchar = "nit_silchar"
	CollegeOther      = "other"
*/
package models
