package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "ESPK"
	defaultAppEnv         = "development"
	defaultLogLevel       = "info"
	defaultAPIBaseURL     = "https://espk.example.com"
	defaultLoginPath      = "/api/login"
	defaultRequestTimeout = 15 * time.Second
	defaultLoginCodeLen   = 5
	defaultMinSecretLen   = 1

	defaultDevServerPort = "8080"
	defaultLoginRate     = 5

	requestTimeoutSecondsEnvVar = "REQUEST_TIMEOUT_SECONDS"
	requestTimeoutEnvVar        = "REQUEST_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	LogLevel string

	// Login endpoint.
	APIBaseURL     string
	LoginPath      string
	RequestTimeout time.Duration

	// Local validation rules, shared with the dev server.
	LoginCodeLength int
	MinSecretLength int

	// On-device storage root for preferences and the credential vault.
	DataDir string

	// Dev server settings. DatabaseURL and RedisURL are optional; the
	// server falls back to in-memory accounts and no rate limiting.
	DevServerPort  string
	DatabaseURL    string
	RedisURL       string
	LoginRateLimit int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBaseURL), "/"),
		LoginPath:       getEnv("LOGIN_PATH", defaultLoginPath),
		RequestTimeout:  defaultRequestTimeout,
		LoginCodeLength: defaultLoginCodeLen,
		MinSecretLength: defaultMinSecretLen,
		DevServerPort:   getEnv("PORT", defaultDevServerPort),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		LoginRateLimit:  defaultLoginRate,
	}

	if v := os.Getenv(requestTimeoutSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", requestTimeoutSecondsEnvVar, err)
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(requestTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", requestTimeoutEnvVar, err)
		}
		cfg.RequestTimeout = d
	}

	if v := os.Getenv("LOGIN_CODE_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid LOGIN_CODE_LENGTH: %q", v)
		}
		cfg.LoginCodeLength = n
	}

	if v := os.Getenv("MIN_SECRET_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MIN_SECRET_LENGTH: %q", v)
		}
		cfg.MinSecretLength = n
	}

	if v := os.Getenv("LOGIN_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %q", v)
		}
		cfg.LoginRateLimit = n
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".espk")
	}
	cfg.DataDir = dataDir

	return cfg, nil
}

// LoginURL returns the absolute URL of the login endpoint.
func (c Config) LoginURL() string {
	return c.APIBaseURL + c.LoginPath
}

// Address returns the dev server listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.DevServerPort, ":") {
		return c.DevServerPort
	}
	return fmt.Sprintf(":%s", c.DevServerPort)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
