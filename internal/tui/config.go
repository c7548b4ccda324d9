package tui

import (
	"time"

	"github.com/Veraticus/ledger/internal/service"
	"github.com/Veraticus/ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Backend          service.Backend
	Location         *time.Location
	Now              func() time.Time
	Currency         string
	RequestTimeout   time.Duration
	Width            int
	Height           int
	EnableAnimations bool
	ShowHelp         bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Location:         time.Local,
		Now:              time.Now,
		Currency:         "EUR",
		RequestTimeout:   30 * time.Second,
		Width:            100,
		Height:           30,
		EnableAnimations: true,
	}
}

// WithBackend sets the API the TUI reads from and writes to.
func WithBackend(backend service.Backend) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLocation sets the zone dates are shown and entered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithCurrency sets the entry form's initial currency.
func WithCurrency(currency string) Option {
	return func(c *Config) {
		c.Currency = currency
	}
}

// WithRequestTimeout bounds each API call.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.RequestTimeout = timeout
		}
	}
}

// WithAnimations toggles the loading spinner.
func WithAnimations(enabled bool) Option {
	return func(c *Config) {
		c.EnableAnimations = enabled
	}
}
