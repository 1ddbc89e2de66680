package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Mail provider identifiers accepted by MAIL_PROVIDER.
const (
	MailProviderGmail = "gmail"
	MailProviderBrevo = "brevo"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Mail     MailConfig
	Reminder ReminderConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// MailConfig contains credentials for the outbound mail transport. Sender is
// the account identifier; the credential is provider specific (a service
// account file for Gmail, an API key for Brevo).
type MailConfig struct {
	Provider        string
	Sender          string
	CredentialsPath string
	APIKey          string
	BaseURL         string
}

// ReminderConfig holds the warranty reminder schedule.
type ReminderConfig struct {
	CronSchedule string
	Timezone     string
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

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			AllowedOrigins: splitCSV(getenvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "fieldservice"),
		},
		Mail: MailConfig{
			Provider:        getenvWithDefault("MAIL_PROVIDER", MailProviderGmail),
			Sender:          os.Getenv("MAIL_SENDER"),
			CredentialsPath: os.Getenv("GMAIL_CREDENTIALS_PATH"),
			APIKey:          os.Getenv("BREVO_API_KEY"),
			BaseURL:         getenvWithDefault("BREVO_BASE_URL", "https://api.brevo.com"),
		},
		Reminder: ReminderConfig{
			CronSchedule: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 9 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The mail
// transport credentials are checked here so a misconfigured deployment fails
// at startup instead of on the first reminder sweep.
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

	if c.Mail.Sender == "" {
		return errors.New("MAIL_SENDER must be provided")
	}

	switch c.Mail.Provider {
	case MailProviderGmail:
		if c.Mail.CredentialsPath == "" {
			return errors.New("GMAIL_CREDENTIALS_PATH must be provided")
		}
	case MailProviderBrevo:
		if c.Mail.APIKey == "" {
			return errors.New("BREVO_API_KEY must be provided")
		}
		if c.Mail.BaseURL == "" {
			return errors.New("BREVO_BASE_URL must not be empty")
		}
	default:
		return fmt.Errorf("unsupported MAIL_PROVIDER %q", c.Mail.Provider)
	}

	if c.Reminder.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}
	if c.Reminder.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
