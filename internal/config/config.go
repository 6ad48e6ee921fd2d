package config

import (
	"time"

	"github.com/tekmux/gatelab/internal/domain"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Sandbox   SandboxConfig   `mapstructure:"sandbox" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// AuthConfig contains the session token settings.
type AuthConfig struct {
	SessionSecret        string `mapstructure:"session_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// TokenLifetime returns how long a session token stays valid.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// SandboxConfig sizes canvases and bounds the session store.
type SandboxConfig struct {
	CanvasWidth            float64 `mapstructure:"canvas_width" validate:"gt=0"`
	CanvasHeight           float64 `mapstructure:"canvas_height" validate:"gt=0"`
	GateWidth              float64 `mapstructure:"gate_width" validate:"gt=0"`
	GateHeight             float64 `mapstructure:"gate_height" validate:"gt=0"`
	SessionTTLMinutes      int     `mapstructure:"session_ttl_minutes" validate:"gte=0"`
	MaxSessions            int     `mapstructure:"max_sessions" validate:"gte=0"`
	JanitorIntervalSeconds int     `mapstructure:"janitor_interval_seconds" validate:"gte=0"`
}

// Layout returns the canvas layout for new sessions.
func (c SandboxConfig) Layout() domain.Layout {
	return domain.Layout{
		Canvas:    domain.Size{Width: c.CanvasWidth, Height: c.CanvasHeight},
		Footprint: domain.Size{Width: c.GateWidth, Height: c.GateHeight},
	}
}

// SessionTTL returns the idle lifetime of a session; zero disables expiry.
func (c SandboxConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// JanitorInterval returns how often expired sessions are swept.
func (c SandboxConfig) JanitorInterval() time.Duration {
	return time.Duration(c.JanitorIntervalSeconds) * time.Second
}

// RateLimitConfig bounds requests per client address.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gt=0"`
}
