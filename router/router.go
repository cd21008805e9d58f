// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/ecell-nits/event-registrations/cliparse"
	"github.com/ecell-nits/event-registrations/handlers"
	"github.com/ecell-nits/event-registrations/middleware"
	"github.com/ecell-nits/event-registrations/models"
	"github.com/ecell-nits/event-registrations/notify"
	"github.com/ecell-nits/event-registrations/otp"
	"github.com/ecell-nits/event-registrations/registration"
	"github.com/ecell-nits/event-registrations/store"
)

const Banner = "This is the event registrations API for E-Cell NIT Silchar."

// prefixes maps event slugs to their route prefix
var prefixes = map[string]string{
	registration.Business.Slug:  "/business",
	registration.Treasure.Slug:  "/treasure",
	registration.BidWise.Slug:   "/bid-wise",
	registration.Adovation.Slug: "/adovations",
}

// Services holds everything the routes call into
type Services struct {
	Registrations []*registration.Service
	OTP           *otp.Service
}

// NewServices builds one registration service per built-in event and the
// OTP service, all over the same store.
func NewServices(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *Services {
	st := store.New(db)
	timeouts := registration.Timeouts{Store: cfg.StoreTimeout, Notify: cfg.NotifyTimeout}

	svcs := &Services{
		OTP: otp.NewService(st, notifier, otp.Config{
			TTL:           cfg.OTPTTL,
			StoreTimeout:  cfg.StoreTimeout,
			NotifyTimeout: cfg.NotifyTimeout,
		}),
	}
	for _, e := range registration.Events() {
		svcs.Registrations = append(svcs.Registrations, registration.NewService(e, st, notifier, timeouts))
	}
	return svcs
}

// Close stops pending OTP expiry timers
func (s *Services) Close() {
	s.OTP.Close()
}

func NewRouter(svcs *Services, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event registrations
	for _, svc := range svcs.Registrations {
		prefix, ok := prefixes[svc.Event().Slug]
		if !ok {
			prefix = "/" + svc.Event().Slug
		}
		h := handlers.NewRegistrationHandler(svc, cfg)

		mux.HandleFunc("GET "+prefix+"/all", middleware.WithLogging(h.All))
		mux.HandleFunc("POST "+prefix+"/register", middleware.WithLogging(h.Register))
		mux.HandleFunc("POST "+prefix+"/check", middleware.WithLogging(h.Check))
		mux.HandleFunc("POST "+prefix+"/single", middleware.WithLogging(h.Single))
		mux.HandleFunc("DELETE "+prefix+"/delete", middleware.WithLogging(h.Delete))

		// Older form builds post to these
		switch svc.Event().Slug {
		case registration.Treasure.Slug:
			mux.HandleFunc("GET "+prefix+"/{$}", middleware.WithLogging(h.All))
			mux.HandleFunc("POST "+prefix+"/create", middleware.WithLogging(h.Register))
		case registration.Adovation.Slug:
			mux.HandleFunc("POST "+prefix+"/apply", middleware.WithLogging(h.Register))
		}
	}

	// Email verification
	otpHandler := handlers.NewOTPHandler(svcs.OTP)
	mux.HandleFunc("POST /verification/sendOtp", middleware.WithLogging(otpHandler.SendOTP))
	mux.HandleFunc("POST /verification/verifyOtp", middleware.WithLogging(otpHandler.VerifyOTP))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: Banner})
	})

	return mux
}
