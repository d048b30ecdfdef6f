// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"your-secret-key-change-in-production",
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string        `env:"SITEKIT_DB_PATH" envDefault:"./data/sitekit.db"`
	JWTSecret  string        `env:"SITEKIT_JWT_SECRET,required"`
	TokenTTL   time.Duration `env:"SITEKIT_TOKEN_TTL" envDefault:"24h"`
	ServerHost string        `env:"SITEKIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int           `env:"SITEKIT_SERVER_PORT" envDefault:"5000"`
	Env        string        `env:"SITEKIT_ENV" envDefault:"development"`
	LogLevel   string        `env:"SITEKIT_LOG_LEVEL" envDefault:"info"`

	CORSOrigins []string `env:"SITEKIT_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001"`

	// API rate limiting
	RateLimitMax    int           `env:"SITEKIT_RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"SITEKIT_RATE_LIMIT_WINDOW" envDefault:"15m"`
	RedisURL        string        `env:"SITEKIT_REDIS_URL"`                        // Optional Redis URL for shared rate-limit counters
	RedisPrefix     string        `env:"SITEKIT_REDIS_PREFIX" envDefault:"sitekit:"` // Redis key prefix

	// Seeding configuration
	DoSeed        bool   `env:"SITEKIT_DO_SEED" envDefault:"false"` // Seed demo blogs and projects
	AdminUsername string `env:"SITEKIT_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"SITEKIT_ADMIN_PASSWORD" envDefault:"admin123"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if Redis rate-limit counters are configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// MinJWTSecretLength is the minimum required length for the signing secret.
// HS256 keys should be at least as long as the hash output.
const MinJWTSecretLength = 32

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding values already set. Missing files are not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("SITEKIT_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, errors.New("SITEKIT_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("SITEKIT_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("SITEKIT_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("SITEKIT_RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("SITEKIT_RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}

	origins := cfg.CORSOrigins[:0]
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSOrigins = origins

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
