// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the event registrations API.

# Route Registration

NewServices wires the store, notifier and services; NewRouter mounts them:

	svcs := router.NewServices(db, cfg, notifier)
	defer svcs.Close()
	mux := router.NewRouter(svcs, cfg)

# Endpoints

Health and banner:

	GET /health
	GET /

Per event, under /business, /treasure, /bid-wise and /adovations:

	GET    {prefix}/all      - List registrations
	POST   {prefix}/register - Submit a team
	POST   {prefix}/check    - Is this leader email registered
	POST   {prefix}/single   - Fetch one registration
	DELETE {prefix}/delete   - Remove one (requires X-Admin-Key)

Aliases kept for older form builds:

	GET  /treasure/        - same as /treasure/all
	POST /treasure/create  - same as /treasure/register
	POST /adovations/apply - same as /adovations/register

Email verification:

	POST /verification/sendOtp   {email}
	POST /verification/verifyOtp {email, otp}
*/
package router
