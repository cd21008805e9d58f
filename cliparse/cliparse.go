package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string

	BrevoAPIKey     string
	BrevoSender     string
	BrevoSenderName string
	MockEmail       bool

	OTPTTL        time.Duration
	StoreTimeout  time.Duration
	NotifyTimeout time.Duration

	EnvFile        string
	PrintAdminKeys bool
}

const (
	DefaultPort          = 3000
	DefaultOTPTTL        = 5 * time.Minute
	DefaultStoreTimeout  = 5 * time.Second
	DefaultNotifyTimeout = 10 * time.Second
	DefaultSenderName    = "ECELL NIT Silchar"
)

// ParseFlags validates flags and fills the remaining settings from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("event-registrations", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Load environment from this file before reading env")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.BrevoAPIKey, "brevo-key", "", "Brevo API key (prefer env)")

	fs.BoolVar(&cfg.MockEmail, "mock-email", false, "Log emails instead of sending them")
	fs.BoolVar(&cfg.PrintAdminKeys, "print-admin-keys", false, "Print the admin key of every event and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	// Email delivery; without a key the server logs mails instead
	if cfg.BrevoAPIKey == "" {
		cfg.BrevoAPIKey = os.Getenv("BREVO_API_KEY")
	}
	cfg.BrevoSender = os.Getenv("BREVO_EMAIL")
	cfg.BrevoSenderName = os.Getenv("BREVO_SENDER_NAME")
	if cfg.BrevoSenderName == "" {
		cfg.BrevoSenderName = DefaultSenderName
	}
	if !cfg.MockEmail {
		cfg.MockEmail = os.Getenv("MOCK_EMAIL") == "true"
	}
	if !cfg.MockEmail && cfg.BrevoAPIKey != "" && cfg.BrevoSender == "" {
		return Config{}, errors.New("BREVO_EMAIL required when BREVO_API_KEY is set")
	}

	var err error
	if cfg.OTPTTL, err = durationEnv("OTP_TTL", DefaultOTPTTL); err != nil {
		return Config{}, err
	}
	if cfg.StoreTimeout, err = durationEnv("STORE_TIMEOUT", DefaultStoreTimeout); err != nil {
		return Config{}, err
	}
	if cfg.NotifyTimeout, err = durationEnv("NOTIFY_TIMEOUT", DefaultNotifyTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadEnvFile never overrides variables that are already set.
// Without an explicit path a missing ./.env is not an error.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
