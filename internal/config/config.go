package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env      string // "development", "production", etc.
	LogLevel string // debug, info, warn, error

	// Server
	ServerAddr     string
	BaseURL        string
	RequestTimeout time.Duration // Deadline for the context of each web request

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Record store client
	StoreURL     string
	StoreTimeout time.Duration

	// Record store service
	StoreAddr    string
	StoreBackend string // "postgres" or "memory"
	DatabaseURL  string
	SeedFile     string

	// Session
	SessionSecret string // Used for deriving the cookie encryption key
	SessionTTL    time.Duration
	RedisURL      string // Empty keeps sessions in memory

	// Shares
	ShareValidityDays int

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting, requests per minute per IP
	RateLimitMax int

	// OIDC (optional)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Object storage for photo uploads (optional)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string
	UploadMaxBytes int64

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "FrameVault"
	SiteTagline string // env: SITE_TAGLINE
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:3000"), "/"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		StoreURL:     strings.TrimRight(getEnv("STORE_URL", "http://localhost:3001"), "/"),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),

		StoreAddr:    getEnv("STORE_ADDR", ":3001"),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/framevault?sslmode=disable"),
		SeedFile:     getEnv("SEED_FILE", "seed.yaml"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		RedisURL:      getEnv("REDIS_URL", ""),

		ShareValidityDays: getEnvInt("SHARE_VALIDITY_DAYS", 365),

		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 100),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/oidc/callback"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "framevault-photos"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "") != "",
		MinioPublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 10<<20)),

		SiteTitle:   getEnv("SITE_TITLE", "FrameVault"),
		SiteTagline: getEnv("SITE_TAGLINE", "Albums worth sharing"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", value)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// OIDCEnabled reports whether external login is configured.
func (c *Config) OIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// UploadsEnabled reports whether photo files can be uploaded to object storage.
func (c *Config) UploadsEnabled() bool {
	return c.MinioEndpoint != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
