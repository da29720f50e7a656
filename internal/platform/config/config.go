package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. Secrets and expiries are loaded once
// at startup and injected into the services, never read from ambient state.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	CORSOrigins   []string

	JWTIssuer string

	// Access token signing
	AccessTokenSecret string
	AccessTokenExpiry time.Duration

	// Refresh token signing. Must differ from the access secret so a leaked
	// access secret cannot mint refresh tokens, and vice versa.
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration

	// Cookie transport
	AccessTokenCookieName  string
	RefreshTokenCookieName string
	CookiePath             string
	CookieDomain           string
	CookieSecure           bool
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Missing or non-distinct signing secrets are a hard error so a
// misconfigured process never comes up.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
	viper.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("COOKIE_PATH", "/")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("COOKIE_SECURE", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		CORSOrigins:            viper.GetStringSlice("CORS_ORIGINS"),
		JWTIssuer:              viper.GetString("JWT_ISSUER"),
		AccessTokenSecret:      viper.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:     viper.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenCookieName:  viper.GetString("ACCESS_TOKEN_COOKIE_NAME"),
		RefreshTokenCookieName: viper.GetString("REFRESH_TOKEN_COOKIE_NAME"),
		CookiePath:             viper.GetString("COOKIE_PATH"),
		CookieDomain:           viper.GetString("COOKIE_DOMAIN"),
		CookieSecure:           viper.GetBool("COOKIE_SECURE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	accessExpiryStr := viper.GetString("ACCESS_TOKEN_EXPIRY")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRY %q: %w", accessExpiryStr, err)
	}
	cfg.AccessTokenExpiry = accessExpiry

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY %q: %w", refreshExpiryStr, err)
	}
	cfg.RefreshTokenExpiry = refreshExpiry

	if err := cfg.validateSecrets(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateSecrets() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is not set")
	}
	if c.RefreshTokenSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is not set")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be distinct")
	}
	return nil
}
