package tui

import (
	"time"

	"github.com/Veraticus/fraudwatch/internal/history"
	"github.com/Veraticus/fraudwatch/internal/predict"
	"github.com/Veraticus/fraudwatch/internal/service"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Predictor      service.Predictor
	History        *history.Store
	ServiceLabel   string
	ExportDir      string
	RequestTimeout time.Duration
	Width          int
	Height         int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		ExportDir:      ".",
		RequestTimeout: predict.DefaultTimeout,
		Width:          100,
		Height:         32,
		ShowHelp:       true,
	}
}

// WithPredictor sets the prediction service.
func WithPredictor(p service.Predictor) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithHistory sets the history store.
func WithHistory(store *history.Store) Option {
	return func(c *Config) {
		c.History = store
	}
}

// WithTheme sets the visual theme.
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

// WithExportDir sets where ctrl+s and ctrl+g write files.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithRequestTimeout bounds each prediction and history request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}

// WithServiceLabel sets the service description shown in the header.
func WithServiceLabel(label string) Option {
	return func(c *Config) {
		c.ServiceLabel = label
	}
}

// WithHelp sets whether the short help line is shown.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
