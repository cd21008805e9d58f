// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ecell-nits/event-registrations/middleware"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/otp"
)

type OTPHandler struct {
	svc *otp.Service
}

func NewOTPHandler(svc *otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

// SendOTP handles POST /verification/sendOtp
func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.svc.Issue(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "OTP sent successfully"})
}

// VerifyOTP handles POST /verification/verifyOtp
func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.svc.Verify(r.Context(), req.Email, req.OTP.String()); err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "OTP verified successfully"})
}
