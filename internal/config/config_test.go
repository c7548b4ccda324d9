package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/ledger/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, Retries: DefaultRetries},
		Display: DisplayConfig{Currency: "EUR"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "valid timezone", mutate: func(c *Config) { c.Display.Timezone = "UTC" }},
		{
			name:        "empty base url",
			mutate:      func(c *Config) { c.API.BaseURL = "" },
			errorString: "api.base_url cannot be empty",
		},
		{
			name:        "bad scheme",
			mutate:      func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			errorString: "invalid api.base_url scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "no host",
			mutate:      func(c *Config) { c.API.BaseURL = "http://" },
			errorString: "missing host",
		},
		{
			name:        "zero timeout",
			mutate:      func(c *Config) { c.API.Timeout = 0 },
			errorString: "invalid api.timeout 0s: must be positive",
		},
		{
			name:        "retries out of range",
			mutate:      func(c *Config) { c.API.Retries = 0 },
			errorString: "invalid api.retries 0: must be between 1 and 10",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Display.Timezone = "Mars/Olympus" },
			errorString: "invalid display.timezone 'Mars/Olympus'",
		},
		{
			name:        "unknown currency",
			mutate:      func(c *Config) { c.Display.Currency = "XYZ" },
			errorString: "invalid display.currency 'XYZ'",
		},
		{
			name:        "bad level",
			mutate:      func(c *Config) { c.Logging.Level = "loud" },
			errorString: "invalid logging.level 'loud'",
		},
		{
			name:        "bad format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			errorString: "invalid logging.format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				require.NoError(t, err)
				assert.NotNil(t, cfg.Display.Location)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.API.BaseURL = ""
	cfg.API.Retries = 99
	cfg.Display.Currency = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url cannot be empty")
	assert.Contains(t, err.Error(), "invalid api.retries 99")
	assert.Contains(t, err.Error(), "display.currency cannot be empty")
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultRetries, cfg.API.Retries)
	assert.Equal(t, "EUR", cfg.Display.Currency)
	assert.Equal(t, time.Local, cfg.Display.Location)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestInitReadsFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://ledger.internal:9000/api
  retries: 5
display:
  timezone: UTC
  currency: usd
`), 0o600))
	t.Setenv("LEDGER_API_TIMEOUT", "5s")
	t.Setenv("LEDGER_API_RETRIES", "2")

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://ledger.internal:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.Retries, "environment overrides the file")
	assert.Equal(t, "USD", cfg.Display.Currency)
	assert.Equal(t, time.UTC, cfg.Display.Location)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_TEST_DOTENV=from-file\nLEDGER_TEST_KEEP=from-file\n"), 0o600))

	t.Setenv("LEDGER_TEST_KEEP", "from-env")
	// Registered so the variable is removed again after the test.
	t.Setenv("LEDGER_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LEDGER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("LEDGER_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("LEDGER_TEST_KEEP"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGER_TEST_DIR", "/var/log")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/ledger.log", want: filepath.Join(home, "ledger.log")},
		{in: "$LEDGER_TEST_DIR/ledger.log", want: "/var/log/ledger.log"},
		{in: "/tmp/x", want: "/tmp/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}

	assert.Equal(t, filepath.Join(home, ".config", "ledger", "config.yaml"), DefaultConfigPath())
}
