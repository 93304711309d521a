package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		Email
		RateLimit
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Email struct {
		SendGridAPIKey      string // Empty means emails are logged instead of sent
		From                string
		FromName            string
		ConfirmationTo      string
		ConfirmationSubject string
		Timeout             time.Duration // Per-send deadline for the fallback dispatcher
		MaxInFlight         int           // Concurrent sends for the fallback dispatcher
		BreakerEnabled      bool
		BreakerFailures     uint32        // Consecutive failures before the breaker opens
		BreakerOpenTimeout  time.Duration // How long the breaker stays open
	}
	RateLimit struct {
		RPS   float64 // Requests per second per client; 0 disables limiting
		Burst int
	}
)

// NewConfig reads configuration from the environment. Values from a .env file
// in the working directory are loaded first when the file exists; variables
// already set in the environment take precedence.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Email defaults
	v.SetDefault("sendgrid_api_key", "")
	v.SetDefault("email_from", DefaultEmailFrom)
	v.SetDefault("email_from_name", "Book Reviews")
	v.SetDefault("email_confirmation_to", "")
	v.SetDefault("email_confirmation_subject", "Review confirmed")
	v.SetDefault("email_timeout", "10s")
	v.SetDefault("email_max_in_flight", 8)
	v.SetDefault("email_breaker_enabled", true)
	v.SetDefault("email_breaker_failures", 5)
	v.SetDefault("email_breaker_open_timeout", "1m")

	// Rate limiting defaults
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Email: Email{
			SendGridAPIKey:      v.GetString("SENDGRID_API_KEY"),
			From:                v.GetString("EMAIL_FROM"),
			FromName:            v.GetString("EMAIL_FROM_NAME"),
			ConfirmationTo:      v.GetString("EMAIL_CONFIRMATION_TO"),
			ConfirmationSubject: v.GetString("EMAIL_CONFIRMATION_SUBJECT"),
			Timeout:             v.GetDuration("EMAIL_TIMEOUT"),
			MaxInFlight:         v.GetInt("EMAIL_MAX_IN_FLIGHT"),
			BreakerEnabled:      v.GetBool("EMAIL_BREAKER_ENABLED"),
			BreakerFailures:     v.GetUint32("EMAIL_BREAKER_FAILURES"),
			BreakerOpenTimeout:  v.GetDuration("EMAIL_BREAKER_OPEN_TIMEOUT"),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}
}
