// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Default values used by New.
const (
	DefaultPort             = 5000
	DefaultBaseURL          = "https://www.ufc.com"
	DefaultEventsPath       = "/events"
	DefaultEventPath        = "/event/"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultRequestDelayMS   = 1000
	DefaultRequestTimeoutMS = 30000
	maxPort                 = 65535
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Port is the HTTP listen port.
	Port int `koanf:"port"`
	// BaseURL is the origin of the source site. Relative links resolve against it.
	BaseURL string `koanf:"base_url"`
	// EventsPath is the landing page that lists upcoming events.
	EventsPath string `koanf:"events_path"`
	// EventPath prefixes a single event identifier, e.g. "/event/".
	EventPath string `koanf:"event_path"`
	// UserAgent is sent on every outbound request.
	UserAgent string `koanf:"user_agent"`
	// RequestDelayMS is slept after every successful page fetch.
	RequestDelayMS int `koanf:"request_delay_ms"`
	// RequestTimeoutMS bounds a single outbound request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Port:             DefaultPort,
		BaseURL:          DefaultBaseURL,
		EventsPath:       DefaultEventsPath,
		EventPath:        DefaultEventPath,
		UserAgent:        DefaultUserAgent,
		RequestDelayMS:   DefaultRequestDelayMS,
		RequestTimeoutMS: DefaultRequestTimeoutMS,
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LandingURL returns the absolute URL of the events listing landing page.
func (c *Config) LandingURL() string {
	return c.BaseURL + c.EventsPath
}

// RequestDelay returns the inter-request delay.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// RequestTimeout returns the outbound request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate(_ context.Context) error {
	if c.Port < 1 || c.Port > maxPort {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.BaseURL)
	}
	if c.EventPath == "" {
		return fmt.Errorf("%w: event_path must not be empty", ErrInvalidConfig)
	}
	if c.RequestDelayMS < 0 {
		return fmt.Errorf("%w: request_delay_ms must not be negative", ErrInvalidConfig)
	}
	if c.RequestTimeoutMS <= 0 {
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
