package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportSDK  = "sdk"
	TransportREST = "rest"
)

type Config struct {
	Host string
	Port string

	Env      string // "development" enables stack traces in error bodies
	LogLevel string

	GeminiAPIKey    string
	GeminiModel     string
	GeminiTransport string // "sdk" | "rest"
	GeminiBaseURL   string // rest transport only; empty means the public endpoint

	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	MaxImageSide       int // long side in px; 0 disables downscaling

	// LenientValidation accepts replies whose values fail the range checks.
	LenientValidation bool

	TelegramBotToken string
	WebhookURL       string
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

// APIKeyConfigured reports whether the upstream credential is set.
func (c *Config) APIKeyConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads .env (if present) and then the process environment.
// A missing GEMINI_API_KEY is not an error here: analyze requests report it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Host:     get("HOST", "0.0.0.0"),
		Port:     get("PORT", "3000"),
		Env:      get("APP_ENV", "production"),
		LogLevel: get("LOG_LEVEL", "info"),

		GeminiAPIKey:    get("GEMINI_API_KEY", ""),
		GeminiModel:     get("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		GeminiTransport: strings.ToLower(get("GEMINI_TRANSPORT", TransportSDK)),
		GeminiBaseURL:   get("GEMINI_BASE_URL", ""),

		TelegramBotToken: get("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       get("WEBHOOK_URL", ""),
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration(get("REQUEST_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if cfg.MaxRequestBodySize, err = strconv.ParseInt(get("MAX_REQUEST_BODY_SIZE", "52428800"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid MAX_REQUEST_BODY_SIZE: %w", err)
	}
	if cfg.MaxImageSide, err = strconv.Atoi(get("MAX_IMAGE_SIDE", "2048")); err != nil {
		return nil, fmt.Errorf("invalid MAX_IMAGE_SIDE: %w", err)
	}
	if cfg.LenientValidation, err = strconv.ParseBool(get("LENIENT_VALIDATION", "false")); err != nil {
		return nil, fmt.Errorf("invalid LENIENT_VALIDATION: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.MaxImageSide < 0 {
		return fmt.Errorf("MAX_IMAGE_SIDE must be >= 0 (got %d)", c.MaxImageSide)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", c.RequestTimeout)
	}
	switch c.GeminiTransport {
	case TransportSDK, TransportREST:
	default:
		return fmt.Errorf("invalid GEMINI_TRANSPORT: %q (use sdk|rest)", c.GeminiTransport)
	}
	return nil
}

// parseDuration accepts Go durations ("90s") and bare seconds ("90").
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
