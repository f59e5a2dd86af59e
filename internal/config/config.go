// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"navigation-secret-key",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	TokenSecret string `env:"ONAV_TOKEN_SECRET,required"`
	ServerHost  string `env:"ONAV_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"ONAV_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"ONAV_ENV" envDefault:"development"`
	LogLevel    string `env:"ONAV_LOG_LEVEL" envDefault:"info"`

	// Storage configuration
	RedisURL string `env:"ONAV_REDIS_URL"`                    // Optional Redis URL for persistent storage
	KVPrefix string `env:"ONAV_KV_PREFIX" envDefault:"onav:"` // Redis key prefix

	// CORS configuration
	CORSOrigins []string `env:"ONAV_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limiting for the auth endpoints
	AuthRateLimit float64 `env:"ONAV_AUTH_RATE_LIMIT" envDefault:"1"` // Requests per second, 0 disables
	AuthRateBurst int     `env:"ONAV_AUTH_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if Redis storage is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// SlogLevel maps the configured log level to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinTokenSecretLength is the minimum required length for the token secret.
// HMAC-SHA256 keys shorter than the hash output weaken the signature.
const MinTokenSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate token secret length
	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("ONAV_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.TokenSecret == weak {
			return nil, fmt.Errorf("ONAV_TOKEN_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.TokenSecret) {
		slog.Warn("ONAV_TOKEN_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
