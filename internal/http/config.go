package http

import (
	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/notify"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookStore
	Reviews  ReviewStore

	// Background email submission for review confirmations
	Dispatcher   notify.Dispatcher
	Confirmation ConfirmationConfig

	// Per-client rate limit; disabled when RateLimitRPS is 0
	RateLimitRPS   float64
	RateLimitBurst int

	// Application info
	Version string
}
