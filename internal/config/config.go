package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/Veraticus/ledger/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. LEDGER_API_BASE_URL.
const EnvPrefix = "LEDGER"

// Defaults for every key.
const (
	DefaultBaseURL  = "http://localhost:8080/api"
	DefaultTimeout  = 30 * time.Second
	DefaultRetries  = 3
	DefaultCurrency = "EUR"
)

// Config is the resolved application configuration.
type Config struct {
	Display DisplayConfig
	Logging LoggingConfig
	API     APIConfig
}

// APIConfig describes how to reach the server.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// DisplayConfig controls how dates and amounts are shown.
type DisplayConfig struct {
	// Location is resolved from Timezone by Validate.
	Location *time.Location
	Timezone string
	Currency string
	Theme    string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.retries", DefaultRetries)
	v.SetDefault("display.timezone", "")
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("display.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Init wires defaults, environment overrides and the config file into v.
// An explicit cfgFile must exist; the default location may be absent.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "ledger"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are named. Missing files are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		p = ExpandPath(p)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Timeout: v.GetDuration("api.timeout"),
			Retries: v.GetInt("api.retries"),
		},
		Display: DisplayConfig{
			Timezone: strings.TrimSpace(v.GetString("display.timezone")),
			Currency: strings.ToUpper(strings.TrimSpace(v.GetString("display.currency"))),
			Theme:    strings.ToLower(strings.TrimSpace(v.GetString("display.theme"))),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("logging.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("logging.format"))),
			File:   ExpandPath(strings.TrimSpace(v.GetString("logging.file"))),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if c.API.BaseURL == "" {
		problems = append(problems, "api.base_url cannot be empty")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("invalid api.base_url '%s': %v", c.API.BaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid api.base_url scheme '%s': must be 'http' or 'https'", u.Scheme))
	} else if u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid api.base_url '%s': missing host", c.API.BaseURL))
	}

	if c.API.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid api.timeout %v: must be positive", c.API.Timeout))
	} else if c.API.Timeout > 10*time.Minute {
		problems = append(problems, fmt.Sprintf("invalid api.timeout %v: must be at most 10 minutes", c.API.Timeout))
	}

	if c.API.Retries < 1 || c.API.Retries > 10 {
		problems = append(problems, fmt.Sprintf("invalid api.retries %d: must be between 1 and 10", c.API.Retries))
	}

	if c.Display.Timezone == "" {
		c.Display.Location = time.Local
	} else if loc, err := time.LoadLocation(c.Display.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid display.timezone '%s': %v", c.Display.Timezone, err))
	} else {
		c.Display.Location = loc
	}

	if c.Display.Currency == "" {
		problems = append(problems, "display.currency cannot be empty")
	} else if !slices.Contains(model.Currencies, c.Display.Currency) {
		problems = append(problems, fmt.Sprintf("invalid display.currency '%s': must be one of %v", c.Display.Currency, model.Currencies))
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid logging.level '%s': must be debug, info, warn or error", c.Logging.Level))
	}
	if c.Logging.Format != "" && c.Logging.Format != "console" && c.Logging.Format != "json" {
		problems = append(problems, fmt.Sprintf("invalid logging.format '%s': must be 'console' or 'json'", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", common.ErrInvalidConfig, strings.Join(problems, "\n- "))
	}
	return nil
}
