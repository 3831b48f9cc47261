package tui

import (
	"time"

	"github.com/Veraticus/sortbin/internal/service"
	"github.com/Veraticus/sortbin/internal/session"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/Veraticus/sortbin/internal/upload"
)

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Gateway          service.Gateway
	InitialView      session.View
	MaxBytes         int64
	RequestTimeout   time.Duration
	Width            int
	Height           int
	EnableAnimations bool
	MouseSupport     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		InitialView:      session.ViewHome,
		MaxBytes:         upload.DefaultMaxBytes,
		RequestTimeout:   30 * time.Second,
		Width:            100,
		Height:           30,
		EnableAnimations: true,
		MouseSupport:     true,
	}
}

// WithGateway sets the remote services the TUI talks to.
func WithGateway(gw service.Gateway) Option {
	return func(c *Config) {
		c.Gateway = gw
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

// WithInitialView sets the view shown on start.
func WithInitialView(v session.View) Option {
	return func(c *Config) {
		c.InitialView = v
	}
}

// WithMaxBytes sets the local upload size limit.
func WithMaxBytes(n int64) Option {
	return func(c *Config) {
		c.MaxBytes = n
	}
}

// WithRequestTimeout bounds every gateway call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithAnimations toggles the blinking cursor and spinner.
func WithAnimations(enabled bool) Option {
	return func(c *Config) {
		c.EnableAnimations = enabled
	}
}

// WithMouse toggles mouse tracking, which drives the drop-target highlight.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}
