package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Clinic schedule settings. All interval arithmetic happens in this
	// single timezone.
	ClinicTimezone string
	WorkdayStart   string // "09:00", 24-hour clock
	WorkdayEnd     string // "17:00"

	// Doctor roster as a JSON array of {"name": ..., "calendar_id": ...}.
	// Order matters: the no-preference policy scans doctors in this order.
	DoctorsJSON string

	// Google service-account credentials shared by the calendar and sheet
	// collaborators.
	GoogleCredentialsPath string

	// Record store (patient appointment rows).
	SpreadsheetID  string
	WorksheetRange string

	// Treatment catalog file.
	TreatmentsPath string

	// Automation webhooks (n8n). The book endpoint creates appointments,
	// the manage endpoint handles cancel/reschedule.
	BookWebhookURL   string
	ManageWebhookURL string
	WebhookTimeout   time.Duration
}

// Load reads configuration from the environment. A .env file is honored
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		ClinicTimezone:        getEnv("CLINIC_TZ", "Europe/Paris"),
		WorkdayStart:          getEnv("WORKDAY_START", "09:00"),
		WorkdayEnd:            getEnv("WORKDAY_END", "17:00"),
		DoctorsJSON:           getEnv("DOCTORS_JSON", ""),
		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", ""),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		WorksheetRange:        getEnv("WORKSHEET_RANGE", "clients_info"),
		TreatmentsPath:        getEnv("TREATMENTS_PATH", "data/treatments.json"),
		BookWebhookURL:        getEnv("WEBHOOK_BOOK", ""),
		ManageWebhookURL:      getEnv("WEBHOOK_MANAGE", ""),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 20*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
