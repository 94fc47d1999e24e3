package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	SiteTitle  string        `mapstructure:"siteTitle"`
	BaseURL    string        `mapstructure:"baseURL"`
	OutputDir  string        `mapstructure:"outputDir"`
	LayoutsDir string        `mapstructure:"layoutsDir"`
	ContentDir string        `mapstructure:"contentDir"`
	Server     ServerConfig  `mapstructure:"server"`
	Contact    ContactConfig `mapstructure:"contact"`
	Log        LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// ContactConfig selects where contact form inquiries are kept.
type ContactConfig struct {
	// Store is "memory" or "sqlite".
	Store string `mapstructure:"store"`
	// DSN is the sqlite database path, ignored for the memory store.
	DSN string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Default values.
const (
	DefaultSiteTitle       = "Armour Construction"
	DefaultBaseURL         = "https://armourconstruction.com"
	DefaultOutputDir       = "public"
	DefaultAddr            = ":1313"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultDSN             = "armour.db"
)

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		SiteTitle: DefaultSiteTitle,
		BaseURL:   DefaultBaseURL,
		OutputDir: DefaultOutputDir,
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Contact: ContactConfig{
			Store: StoreMemory,
			DSN:   DefaultDSN,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
	}
}

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	var b strings.Builder
	b.WriteString("multiple validation errors:")
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.OutputDir == "" {
		errs = append(errs, &ValidationError{Field: "outputDir", Message: "must not be empty"})
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		errs = append(errs, &ValidationError{Field: "baseURL", Message: "must start with http:// or https://"})
	}
	if c.Server.Addr == "" {
		errs = append(errs, &ValidationError{Field: "server.addr", Message: "must not be empty"})
	}
	timeouts := []struct {
		field string
		d     time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.d < 0 {
			errs = append(errs, &ValidationError{Field: t.field, Message: "must be non-negative"})
		}
	}

	switch c.Contact.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.Contact.DSN == "" {
			errs = append(errs, &ValidationError{Field: "contact.dsn", Message: "required for the sqlite store"})
		}
	default:
		errs = append(errs, &ValidationError{
			Field:   "contact.store",
			Message: fmt.Sprintf("must be %q or %q", StoreMemory, StoreSQLite),
		})
	}

	switch c.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		errs = append(errs, &ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be %q or %q", FormatJSON, FormatConsole),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
