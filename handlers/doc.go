// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the event registrations API.

# Handler Types

  - RegistrationHandler: one per event, wraps a registration.Service
  - OTPHandler: email verification codes, wraps an otp.Service

	h := handlers.NewRegistrationHandler(svc, cfg)
	mux.HandleFunc("POST /business/register", middleware.WithLogging(h.Register))

# Registration Routes

Mounted under each event prefix:

	GET    /all       → All
	POST   /register  → Register
	POST   /check     → Check   {email}
	POST   /single    → Single  {email}
	DELETE /delete    → Delete  {email}, requires X-Admin-Key

The admin key is per event, see auth.GenerateAdminKey.

# Status Codes

  - 200: success
  - 400: malformed body, validation failure, duplicate, OTP failure
  - 401: missing or wrong admin key
  - 404: no registration for the email
  - 500: storage failure, logged with the request path

Every error body is models.ErrorResponse.
*/
package handlers
