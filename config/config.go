package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Email provider identifiers accepted in EMAIL_PROVIDER
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

type Config struct {
	Port    string
	GinMode string
	// CORS
	CORSAllowedOrigins []string
	// Proxies whose X-Forwarded-For is honored for the client IP; nil = use the socket address
	TrustedProxies []string
	// Email delivery
	EmailProvider    string
	ResendAPIKey     string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	ContactEmailFrom string // Must be a verified sender domain at the provider
	ContactEmailTo   string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// Logging
	LogLevel       string
	LogFile        string
	LogMaxSizeMB   int
	LogMaxBackups  int
	LogMaxAgeDays  int
	ExposeErrors   bool // Include provider error text in 500 responses
	SwaggerEnabled bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; a missing file is fine in production
	_ = godotenv.Load()

	ginMode := getEnv("GIN_MODE", "debug")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            ginMode,
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"https://davinci.agency", "https://www.davinci.agency"}),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES", nil),
		// Email delivery. No default API key.
		EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderResend)),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		ContactEmailFrom: getEnv("CONTACT_EMAIL_FROM", "noreply@davinci.agency"),
		ContactEmailTo:   getEnv("CONTACT_EMAIL_TO", "apps@davinci.agency"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Logging
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups:  getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:  getEnvInt("LOG_MAX_AGE_DAYS", 28),
		ExposeErrors:   getEnvBool("EXPOSE_ERROR_DETAILS", false),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", ginMode != "release"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate refuses configurations that cannot deliver mail.
func (c *Config) Validate() error {
	if c.ContactEmailFrom == "" || c.ContactEmailTo == "" {
		return errors.New("config: CONTACT_EMAIL_FROM and CONTACT_EMAIL_TO must be set")
	}

	switch c.EmailProvider {
	case ProviderResend:
		if c.ResendAPIKey == "" {
			return errors.New("config: RESEND_API_KEY is required when EMAIL_PROVIDER=resend")
		}
	case ProviderSMTP:
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return errors.New("config: SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD are required when EMAIL_PROVIDER=smtp")
		}
	default:
		return fmt.Errorf("config: unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q", proxy)
			}
		}
	}

	if c.RateLimitWindowSeconds <= 0 || c.RateLimitContactThreshold <= 0 {
		return errors.New("config: rate limit window and threshold must be positive")
	}

	return nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
