// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Postgres (system of record)
	PostgresDSN string

	// MongoDB (delivery logs)
	MongoURI string
	MongoDB  string

	// Scheduling policy. All trip-window math happens in ScheduleTZ and
	// every persisted timestamp is UTC. Routes without a recorded
	// duration fall back to DefaultTripHours.
	ScheduleTZ       string
	DefaultTripHours float64

	// Dispatch worker
	DispatchInterval  time.Duration
	DispatchBatchSize int
	SendRatePerSec    float64

	// Providers
	SMSProvider   string // termii | twilio | bulksms
	EmailProvider string // resend | gmail
	SMSSenderID   string

	TermiiAPIKey     string
	TermiiBaseURL    string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	BulkSMSAPIToken  string
	BulkSMSBaseURL   string
	ResendAPIKey     string
	ResendFrom       string

	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailFrom         string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// Logging
	LogFile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=travelcover port=5432 sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "travelcover"),

		ScheduleTZ:       getEnv("SCHEDULE_TIMEZONE", "UTC"),
		DefaultTripHours: getEnvAsFloat("DEFAULT_TRIP_DURATION_HOURS", 8),

		DispatchInterval:  time.Duration(getEnvAsInt("DISPATCH_INTERVAL", 30)) * time.Second,
		DispatchBatchSize: getEnvAsInt("DISPATCH_BATCH_SIZE", 100),
		SendRatePerSec:    getEnvAsFloat("SEND_RATE_PER_SEC", 1),

		SMSProvider:   getEnv("SMS_PROVIDER", "termii"),
		EmailProvider: getEnv("EMAIL_PROVIDER", "resend"),
		SMSSenderID:   getEnv("SMS_SENDER_ID", "TravelGuard"),

		TermiiAPIKey:     getEnv("TERMII_API_KEY", ""),
		TermiiBaseURL:    getEnv("TERMII_BASE_URL", "https://api.ng.termii.com"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		BulkSMSAPIToken:  getEnv("BULKSMS_API_TOKEN", ""),
		BulkSMSBaseURL:   getEnv("BULKSMS_BASE_URL", "https://www.bulksmsnigeria.com"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ResendFrom:       getEnv("RESEND_FROM", "notifications@travelcover.example"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailFrom:         getEnv("GMAIL_FROM", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvAsInt("JWT_TTL_HOURS", 12)) * time.Hour,

		LogFile: getEnv("LOG_FILE", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
