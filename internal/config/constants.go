package config

const (
	// DefaultPort is the HTTP port used when PORT is unset
	DefaultPort = 8001

	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./book-reviews.db"

	// DefaultEmailFrom is the sender address used when EMAIL_FROM is unset
	DefaultEmailFrom = "noreply@example.com"
)
