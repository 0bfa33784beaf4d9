// Package config provides configuration loading and validation for the site.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

// Config holds the runtime configuration. Values come from the environment
// (a .env file is loaded by the binary) and can be overridden by CLI flags.
type Config struct {
	Port            int
	DefaultLocale   string        // must be one of i18n.Supported()
	SiteURL         string        // absolute base URL used in canonical links, sitemap and JSON-LD
	GinMode         string        // debug, release or test
	VisitorLog      bool          // log one privacy-hashed line per page view
	VisitorSalt     string        // salt for IP hashing; random per process when empty
	ResumeDir       string        // directory holding resume-<locale>.pdf files
	ShutdownTimeout time.Duration // grace period for in-flight requests
	TrustedProxies  []string      // proxies allowed to set X-Forwarded-For
}

// Default values used when the environment does not set them.
const (
	DefaultPort            = 8080
	DefaultLocale          = "pt"
	DefaultSiteURL         = "https://gabrielribeiro.work"
	DefaultGinMode         = "release"
	DefaultResumeDir       = "resumes"
	DefaultShutdownTimeout = 10 * time.Second
)

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvInt("PORT", DefaultPort),
		DefaultLocale:   getEnvString("DEFAULT_LOCALE", DefaultLocale),
		SiteURL:         strings.TrimSuffix(getEnvString("SITE_URL", DefaultSiteURL), "/"),
		GinMode:         getEnvString("GIN_MODE", DefaultGinMode),
		VisitorLog:      getEnvBool("VISITOR_LOG", true),
		VisitorSalt:     getEnvString("VISITOR_SALT", ""),
		ResumeDir:       getEnvString("RESUME_DIR", DefaultResumeDir),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		TrustedProxies:  parseList(getEnvString("TRUSTED_PROXIES", "")),
	}

	if cfg.VisitorSalt == "" {
		salt, err := randomHex(16)
		if err != nil {
			return nil, fmt.Errorf("failed to generate visitor salt: %w", err)
		}
		cfg.VisitorSalt = salt
	}

	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Field: "port", Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Port)}
	}

	if _, err := c.Locales(); err != nil {
		return &Error{Field: "default_locale", Message: err.Error()}
	}

	u, err := url.Parse(c.SiteURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &Error{Field: "site_url", Message: fmt.Sprintf("must be an absolute URL, got %q", c.SiteURL)}
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return &Error{Field: "gin_mode", Message: fmt.Sprintf("must be debug, release or test, got %q", c.GinMode)}
	}

	if c.ShutdownTimeout <= 0 {
		return &Error{Field: "shutdown_timeout", Message: "must be positive"}
	}

	return nil
}

// Locales builds the supported locale set with the configured default.
func (c *Config) Locales() (i18n.Set, error) {
	return i18n.NewSet(i18n.Locale(c.DefaultLocale), i18n.Supported()...)
}

// ResumePath returns where the PDF resume of a locale is published.
func (c *Config) ResumePath(locale string) string {
	return filepath.Join(c.ResumeDir, "resume-"+locale+".pdf")
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Error is a configuration value that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseList parses a comma-separated list, dropping empty entries.
func parseList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
