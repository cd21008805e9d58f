// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("POST /business/register", middleware.WithLogging(h.Register))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

Reflects the request origin and allows GET, POST, DELETE and OPTIONS with
Content-Type, Authorization and X-Admin-Key headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

ParseJSONBody returns ErrEmptyBody for an empty body and fails on bodies over
MaxBodyBytes.

# Client IP

	ip := middleware.GetClientIP(r)

Prefers the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr
without its port.
*/
package middleware
