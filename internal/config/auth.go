package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvAuthSecret overrides the JWT signing secret.
	EnvAuthSecret = "AUTH_JWT_SECRET"

	// EnvAuthTokenExpiration overrides the access token lifetime.
	EnvAuthTokenExpiration = "AUTH_TOKEN_EXPIRATION"
)

// AuthConfig contains token issuance configuration. Tokens are signed
// with HMAC-SHA256 using the configured secret.
type AuthConfig struct {
	Secret          string `toml:"secret"`
	TokenExpiration string `toml:"token_expiration"`
}

// TokenExpirationDuration parses and returns the token lifetime as a time.Duration.
func (c *AuthConfig) TokenExpirationDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenExpiration)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the auth configuration.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.TokenExpiration != "" {
		c.TokenExpiration = overlay.TokenExpiration
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenExpiration == "" {
		c.TokenExpiration = "168h"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvAuthTokenExpiration); v != "" {
		c.TokenExpiration = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	d, err := time.ParseDuration(c.TokenExpiration)
	if err != nil {
		return fmt.Errorf("invalid token_expiration: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("token_expiration must be positive")
	}
	return nil
}
