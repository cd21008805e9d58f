package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ecell-nits/event-registrations/auth"
	"github.com/ecell-nits/event-registrations/cliparse"
	"github.com/ecell-nits/event-registrations/db"
	"github.com/ecell-nits/event-registrations/middleware"
	"github.com/ecell-nits/event-registrations/notify"
	"github.com/ecell-nits/event-registrations/registration"
	"github.com/ecell-nits/event-registrations/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKeys {
		for _, e := range registration.Events() {
			fmt.Printf("%-10s %s\n", e.Slug, auth.GenerateAdminKey(e.Slug, cfg.AdminKeySalt))
		}
		return
	}

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.BrevoAPIKey != "" && !cfg.MockEmail {
		notifier = notify.NewBrevo(cfg.BrevoAPIKey, cfg.BrevoSender, cfg.BrevoSenderName)
		slog.Info("Sending email through Brevo", "sender", cfg.BrevoSender)
	} else {
		slog.Warn("Email delivery disabled, logging messages instead")
	}

	svcs := router.NewServices(dbConn, cfg, notifier)
	defer svcs.Close()

	// Create router
	mux := router.NewRouter(svcs, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
