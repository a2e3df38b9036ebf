package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	AI       AIConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr               string
	CORSAllowedOrigins []string
}

// DatabaseConfig contains the hosted store connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups session and credential settings.
type AuthConfig struct {
	Session       SessionConfig
	AdminUsername string
	// AdminPasswordHash is a bcrypt hash; plaintext passwords are never read from the environment.
	AdminPasswordHash string
	SignupEnabled     bool
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// AIConfig holds the completion provider credentials and routing.
type AIConfig struct {
	OpenAI         ProviderConfig
	Groq           ProviderConfig
	RecipeProvider string
	MatchProvider  string
	Timeout        time.Duration
}

// ProviderConfig describes one OpenAI-compatible completion provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Placeholder values shipped in example env files. They disable the hosted store.
var placeholderDatabaseURLs = []string{
	"https://placeholder.supabase.co",
	"placeholder",
	"postgres://placeholder",
}

// Load inspects the environment and builds a Config value. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 5),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 20),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 15*time.Minute),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "parfumai_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
		},
		AdminUsername:     strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		SignupEnabled:     parseBoolWithDefault(os.Getenv("AUTH_SIGNUP_ENABLED"), true),
	}

	cfg.AI = AIConfig{
		OpenAI: ProviderConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
		Groq: ProviderConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			Model:   strings.TrimSpace(os.Getenv("GROQ_MODEL")),
			BaseURL: strings.TrimSpace(os.Getenv("GROQ_BASE_URL")),
		},
		RecipeProvider: strings.ToLower(firstNonEmpty(os.Getenv("AI_RECIPE_PROVIDER"), "groq")),
		MatchProvider:  strings.ToLower(firstNonEmpty(os.Getenv("AI_MATCH_PROVIDER"), "openai")),
		Timeout:        parseDurationWithDefault(os.Getenv("AI_TIMEOUT"), 90*time.Second),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required when ADMIN_USERNAME is set")
	}

	return cfg, nil
}

// HostedStoreEnabled reports whether a usable hosted datastore is configured.
func (c DatabaseConfig) HostedStoreEnabled() bool {
	if c.UseMock {
		return true
	}
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return false
	}
	for _, placeholder := range placeholderDatabaseURLs {
		if strings.EqualFold(url, placeholder) {
			return false
		}
	}
	return !strings.Contains(strings.ToLower(url), "placeholder")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
