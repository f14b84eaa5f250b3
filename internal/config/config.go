package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the content API.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the content API server configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Port    string
	Env     string
	Storage string
	// CORSAllowedHosts restricts cross-origin callers; empty allows any origin.
	CORSAllowedHosts []string

	DB       DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Health   HealthConfig
}

// DatabaseConfig contains PostgreSQL connection parameters. URL, when set,
// takes precedence over the individual fields.
type DatabaseConfig struct {
	URL           string
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	MigrationsDir string

	// ConnectAttempts and ConnectBackoff drive the startup retry loop; the
	// delay doubles after each failed attempt.
	ConnectAttempts int
	ConnectBackoff  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// RedisConfig contains Redis connection parameters for the collection cache.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// TelegramConfig enables new-lead notifications when both fields are set.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIURL   string
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// HealthConfig tunes the server's own readiness probe.
type HealthConfig struct {
	Timeout time.Duration
}

// ConsoleConfig configures the staff console binary.
type ConsoleConfig struct {
	APIBaseURL    string
	Timeout       time.Duration
	Debug         bool
	LeadPolicy    string
	ProbeSchedule string
	ProbeTimeout  time.Duration
}

// Load reads the server configuration. A .env file in the working directory
// is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine: production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.Storage = strings.ToLower(getEnv("STORAGE", StoragePostgres))
	cfg.CORSAllowedHosts = getEnvList("CORS_ALLOWED_HOSTS")

	// Database
	cfg.DB = DatabaseConfig{
		URL:           getEnv("DATABASE_URL", ""),
		Host:          getEnv("DB_HOST", ""),
		Port:          getEnv("DB_PORT", "5432"),
		User:          getEnv("DB_USER", ""),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", ""),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		ConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", false),
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Telegram
	cfg.Telegram = TelegramConfig{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		APIURL:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
	}

	var err error
	if cfg.Redis.TTL, err = parseDurationEnv("CACHE_TTL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.Health.Timeout, err = parseDurationEnv("HEALTH_TIMEOUT", "2s"); err != nil {
		return nil, fmt.Errorf("invalid HEALTH_TIMEOUT: %w", err)
	}
	if cfg.DB.ConnectBackoff, err = parseDurationEnv("DB_CONNECT_BACKOFF", "500ms"); err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_BACKOFF: %w", err)
	}
	if cfg.DB.ConnectAttempts < 1 {
		return nil, fmt.Errorf("invalid DB_CONNECT_ATTEMPTS %d: need at least 1", cfg.DB.ConnectAttempts)
	}

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DB.URL == "" && (cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "") {
			return nil, errors.New("database configuration incomplete: set DATABASE_URL or DB_HOST, DB_USER and DB_NAME")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE %q: use %s or %s", cfg.Storage, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

// LoadConsole reads the console configuration.
func LoadConsole() (*ConsoleConfig, error) {
	_ = godotenv.Load()

	cfg := &ConsoleConfig{
		APIBaseURL:    getEnv("LED_API_URL", "http://localhost:8080/api"),
		Debug:         getEnvBool("LED_DEBUG", false),
		LeadPolicy:    getEnv("LEAD_POLICY", "permissive"),
		ProbeSchedule: getEnv("PROBE_SCHEDULE", "@every 30s"),
	}

	var err error
	if cfg.Timeout, err = parseDurationEnv("LED_API_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid LED_API_TIMEOUT: %w", err)
	}
	if cfg.ProbeTimeout, err = parseDurationEnv("PROBE_TIMEOUT", "5s"); err != nil {
		return nil, fmt.Errorf("invalid PROBE_TIMEOUT: %w", err)
	}
	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
