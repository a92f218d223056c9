package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const (
	SinkSheets = "sheets"
	SinkForms  = "forms"
)

type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"console"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisURL    string `envconfig:"REDIS_URL"`

	MailHost string   `envconfig:"MAIL_HOST"`
	MailPort int      `envconfig:"MAIL_PORT" default:"587"`
	MailUser string   `envconfig:"MAIL_USER"`
	MailPass string   `envconfig:"MAIL_PASS"`
	MailFrom string   `envconfig:"MAIL_FROM" default:"noreply@londonslush.com"`
	NotifyTo []string `envconfig:"NOTIFY_TO" default:"info@londonslush.com,support@londonslush.com"`

	SpreadsheetCredentials string        `envconfig:"SPREADSHEET_CREDENTIALS"`
	SpreadsheetID          string        `envconfig:"SPREADSHEET_ID"`
	SheetsBaseURL          string        `envconfig:"SHEETS_BASE_URL" default:"https://sheets.googleapis.com"`
	FormID                 string        `envconfig:"FORM_ID"`
	FormEntryMap           string        `envconfig:"FORM_ENTRY_MAP"`
	FormsBaseURL           string        `envconfig:"FORMS_BASE_URL" default:"https://docs.google.com"`
	SyncTimeout            time.Duration `envconfig:"SYNC_TIMEOUT" default:"10s"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.WithStack(err)
	}
	return &c, nil
}

// SheetsEnabled reports whether the spreadsheet sink should run. A sink with
// none of its settings is just off; a half-configured one is an error.
func (c *Config) SheetsEnabled() (bool, error) {
	creds := strings.TrimSpace(c.SpreadsheetCredentials)
	id := strings.TrimSpace(c.SpreadsheetID)
	switch {
	case creds == "" && id == "":
		return false, nil
	case creds == "":
		return false, &entity.ConfigurationError{Sink: SinkSheets, Field: "SPREADSHEET_CREDENTIALS", Reason: "is not set"}
	case id == "":
		return false, &entity.ConfigurationError{Sink: SinkSheets, Field: "SPREADSHEET_ID", Reason: "is not set"}
	}
	if c.SyncTimeout <= 0 {
		return false, &entity.ConfigurationError{Sink: SinkSheets, Field: "SYNC_TIMEOUT", Reason: "must be positive"}
	}
	return true, nil
}

// FormsEnabled is the forms counterpart of SheetsEnabled. The entry map's
// contents are checked by the forms client itself.
func (c *Config) FormsEnabled() (bool, error) {
	id := strings.TrimSpace(c.FormID)
	entries := strings.TrimSpace(c.FormEntryMap)
	switch {
	case id == "" && entries == "":
		return false, nil
	case id == "":
		return false, &entity.ConfigurationError{Sink: SinkForms, Field: "FORM_ID", Reason: "is not set"}
	case entries == "":
		return false, &entity.ConfigurationError{Sink: SinkForms, Field: "FORM_ENTRY_MAP", Reason: "is not set"}
	}
	if c.SyncTimeout <= 0 {
		return false, &entity.ConfigurationError{Sink: SinkForms, Field: "SYNC_TIMEOUT", Reason: "must be positive"}
	}
	return true, nil
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && len(c.NotifyTo) > 0
}
