package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment variable overrides, e.g.
	// ARMOUR_SERVER_ADDR for server.addr.
	EnvPrefix = "ARMOUR"

	defaultConfigName = "config"
)

// Loader reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()

	d := NewConfig()
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("baseURL", d.BaseURL)
	v.SetDefault("outputDir", d.OutputDir)
	v.SetDefault("layoutsDir", d.LayoutsDir)
	v.SetDefault("contentDir", d.ContentDir)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.readTimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdownTimeout", d.Server.ShutdownTimeout)
	v.SetDefault("contact.store", d.Contact.Store)
	v.SetDefault("contact.dsn", d.Contact.DSN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads the configuration. With an empty path, config.yaml is looked up
// in the working directory and its absence is not an error; an explicit path
// must exist.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
		}
		l.v.SetConfigFile(path)
	} else {
		l.v.AddConfigPath(".")
		l.v.SetConfigName(defaultConfigName)
		l.v.SetConfigType("yaml")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	}

	cfg := NewConfig()
	if err := l.v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, &LoadError{Path: l.v.ConfigFileUsed(), Message: "failed to parse config", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: l.v.ConfigFileUsed(), Message: "configuration validation failed", Err: err}
	}
	return cfg, nil
}

// ConfigFileUsed is the file the last Load read, or "" when none was found.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func decodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadError is returned for any failure while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	path := e.Path
	if path == "" {
		path = "config"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is shorthand for NewLoader().Load(path).
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}
