// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecell-nits/event-registrations/middleware"
	"github.com/ecell-nits/event-registrations/otp"
	"github.com/ecell-nits/event-registrations/registration"
	"github.com/ecell-nits/event-registrations/store"
)

const (
	msgInvalidBody = "Invalid request body"
	msgNotFound    = "No registration found for this email."
	msgInternal    = "Something went wrong!"
)

// writeError maps a service error to its status. Storage details are logged,
// never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *registration.ValidationError
		dup  *registration.DuplicateError
	)

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &dup):
		middleware.ErrorResponse(w, http.StatusBadRequest, dup.Message)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, otp.ErrInvalidEmail),
		errors.Is(err, otp.ErrOTPRequired),
		errors.Is(err, otp.ErrOTPNotFound),
		errors.Is(err, otp.ErrOTPMismatch):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgInternal)
	}
}
