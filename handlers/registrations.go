// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ecell-nits/event-registrations/auth"
	"github.com/ecell-nits/event-registrations/cliparse"
	"github.com/ecell-nits/event-registrations/middleware"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/registration"
)

// RegistrationHandler serves one event's routes
type RegistrationHandler struct {
	svc *registration.Service
	cfg cliparse.Config
}

func NewRegistrationHandler(svc *registration.Service, cfg cliparse.Config) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, cfg: cfg}
}

// All handles GET /{event}/all
func (h *RegistrationHandler) All(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListResponse{
		Message:       "Registrations fetched successfully.",
		Count:         len(regs),
		Registrations: regs,
	})
}

// Register handles POST /{event}/register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reg, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegisterResponse{
		Message:      "Registration successful!",
		Registration: *reg,
	})
}

// Check handles POST /{event}/check
func (h *RegistrationHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reg, err := h.svc.Check(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := models.CheckResponse{
		Message:      "No registration found.",
		Registered:   reg != nil,
		Registration: reg,
	}
	if reg != nil {
		resp.Message = "You have already registered for this event."
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Single handles POST /{event}/single
func (h *RegistrationHandler) Single(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reg, err := h.svc.Get(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reg == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, msgNotFound)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SingleResponse{
		Message:      "Registration fetched successfully.",
		Registration: *reg,
	})
}

// Delete handles DELETE /{event}/delete. Requires the event's X-Admin-Key.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(h.svc.Event().Slug, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	reg, err := h.svc.Delete(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{
		Message: "Registration deleted successfully.",
		Deleted: *reg,
	})
}
