// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; CoreConfig handles the
// framework-level settings (ports, TLS, log level, and so on).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Redis (chat history and fan-out)
	RedisAddr     string // host:port; blank disables chat
	RedisPassword string
	RedisDB       int

	// Session and token configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	TokenKey      string // Secret key for signing bearer tokens
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")
	StorageS3Region  string // AWS region (s3 backend)
	StorageS3Bucket  string // S3 bucket name
	StorageS3Prefix  string // S3 key prefix

	// Email/SMTP configuration; blank host drops outbound mail
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string

	// Base URL for OAuth callbacks and email links
	BaseURL string

	// Google OAuth configuration; blank disables the Google sign-in routes
	GoogleClientID     string
	GoogleClientSecret string

	// Admin bootstrap: promotes/creates this account on startup
	AdminUsername string
	AdminLoginID  string
}
