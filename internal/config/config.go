package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	WhatsApp  WhatsAppConfig
	Rates     RatesConfig
	Reporting ReportingConfig
	AI        AIConfig
	Debug     bool
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// Leaving AccessToken empty disables the WhatsApp integration entirely.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
	FarmerGroupID string
	OwnerID       string
}

// RatesConfig contains configuration for the market-rate sheet maintained by admins.
type RatesConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	RateCronSchedule   string
	ReportCronSchedule string
	Timezone           string
}

// AIConfig holds settings for LLM providers. Empty key disables AI tools.
type AIConfig struct {
	GeminiKey   string
	GeminiModel string
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

	debug, _ := strconv.ParseBool(os.Getenv("APP_DEBUG"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "poultrymitra"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			FarmerGroupID: os.Getenv("WHATSAPP_FARMER_GROUP_ID"),
			OwnerID:       os.Getenv("WHATSAPP_OWNER_ID"),
		},
		Rates: RatesConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("RATES_SHEET_ID"),
			SheetRange:      getenvWithDefault("RATES_SHEET_RANGE", "Rates!A:D"),
		},
		Reporting: ReportingConfig{
			RateCronSchedule:   getenvWithDefault("RATE_CRON_SCHEDULE", "0 9 * * *"),
			ReportCronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 0"),
			Timezone:           getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		AI: AIConfig{
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel: getenvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Debug: debug,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// WhatsApp, rates-sheet and AI integrations are optional; when their
// credentials are absent the corresponding services run disabled.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.WhatsAppEnabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided when WHATSAPP_TOKEN is set")
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided when WHATSAPP_TOKEN is set")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.RatesSheetEnabled() && c.Rates.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when RATES_SHEET_ID is set")
	}

	if c.Reporting.RateCronSchedule == "" || c.Reporting.ReportCronSchedule == "" {
		return errors.New("cron schedules must be provided")
	}
	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// WhatsAppEnabled reports whether the WhatsApp Cloud API integration is configured.
func (c *Config) WhatsAppEnabled() bool {
	return c.WhatsApp.AccessToken != ""
}

// RatesSheetEnabled reports whether the market-rate sheet import is configured.
func (c *Config) RatesSheetEnabled() bool {
	return c.Rates.SpreadsheetID != ""
}

// AIEnabled reports whether the Gemini-backed AI tools are configured.
func (c *Config) AIEnabled() bool {
	return c.AI.GeminiKey != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
