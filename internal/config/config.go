package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Hydration HydrationConfig
	Reporting ReportingConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// HydrationConfig holds hydration defaults.
type HydrationConfig struct {
	DefaultGoalMl int
}

// Recipient is a user covered by the scheduled jobs. Phone is optional and
// only needed for digest delivery.
type Recipient struct {
	UserID int64
	Phone  string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	SweepSchedule  string
	DigestSchedule string
	Timezone       string
	Recipients     []Recipient
}

// PhoneDirectory maps each recipient phone number to its user id.
func (c ReportingConfig) PhoneDirectory() map[string]int64 {
	directory := make(map[string]int64, len(c.Recipients))
	for _, r := range c.Recipients {
		if r.Phone != "" {
			directory[r.Phone] = r.UserID
		}
	}
	return directory
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether outbound messaging is configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// WebhookEnabled reports whether inbound chat logging is configured.
func (c WhatsAppConfig) WebhookEnabled() bool {
	return c.Enabled() && c.VerifyToken != ""
}

// SheetsConfig contains configuration required to export summaries to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether summary export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	goal, err := getenvInt("WATER_GOAL_ML", 2000)
	if err != nil {
		return nil, err
	}

	recipients, err := ParseRecipients(os.Getenv("REPORT_RECIPIENTS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getenvWithDefault("STORAGE_DRIVER", DriverMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "fittrack"),
		},
		Hydration: HydrationConfig{
			DefaultGoalMl: goal,
		},
		Reporting: ReportingConfig{
			SweepSchedule:  getenvWithDefault("SWEEP_CRON_SCHEDULE", "15 0 * * *"),
			DigestSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:       getenvWithDefault("TIMEZONE", "UTC"),
			Recipients:     recipients,
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Summaries!A:I"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverMongoDB, DriverMemory, c.Storage.Driver)
	}

	if c.Hydration.DefaultGoalMl < 0 {
		return errors.New("WATER_GOAL_ML must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided when WHATSAPP_TOKEN is set")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_DATABASE_ID is set")
	}

	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Reporting.Timezone == "" {
		return nil, errors.New("TIMEZONE must be provided")
	}
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}
	return loc, nil
}

// ParseRecipients parses "userId:phone,userId" lists.
func ParseRecipients(raw string) ([]Recipient, error) {
	var recipients []Recipient
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		idPart, phone, _ := strings.Cut(item, ":")
		userID, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil || userID <= 0 {
			return nil, fmt.Errorf("REPORT_RECIPIENTS entry %q must start with a positive user id", item)
		}
		recipients = append(recipients, Recipient{UserID: userID, Phone: strings.TrimSpace(phone)})
	}
	return recipients, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
