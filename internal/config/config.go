package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Scraper    ScraperConfig
	Search     SearchConfig
	Sweep      SweepConfig
	Auth       AuthConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type ScraperConfig struct {
	BaseURL      string
	Token        string
	ActorID      string
	PollInterval time.Duration
	MaxPolls     int
}

type SearchConfig struct {
	StaleAfter       time.Duration
	MinJobsThreshold int
	DefaultPageSize  int
	MaxPageSize      int
	ResponseCacheTTL time.Duration
}

type SweepConfig struct {
	CronSpec      string
	PrefetchLimit int
}

type AuthConfig struct {
	AdminSecret string
}

type ExtractionConfig struct {
	GeminiAPIKey string
	Model        string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "job-scout"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Scraper = ScraperConfig{
		BaseURL:      opt("SCRAPER_BASE_URL", "https://api.apify.com"),
		Token:        os.Getenv("SCRAPER_API_TOKEN"),
		ActorID:      opt("SCRAPER_ACTOR_ID", "linkedin-jobs-scraper"),
		PollInterval: optDuration("SCRAPER_POLL_INTERVAL", 3*time.Second),
		MaxPolls:     optInt("SCRAPER_MAX_POLLS", 60),
	}

	cfg.Search = SearchConfig{
		StaleAfter:       optDuration("SEARCH_STALE_AFTER", 24*time.Hour),
		MinJobsThreshold: optInt("SEARCH_MIN_JOBS_THRESHOLD", 50),
		DefaultPageSize:  optInt("SEARCH_DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:      optInt("SEARCH_MAX_PAGE_SIZE", 100),
		ResponseCacheTTL: optDuration("SEARCH_RESPONSE_CACHE_TTL", 60*time.Second),
	}

	cfg.Sweep = SweepConfig{
		CronSpec:      opt("SWEEP_CRON_SPEC", "@every 1h"),
		PrefetchLimit: optInt("SWEEP_PREFETCH_LIMIT", 5),
	}

	cfg.Auth = AuthConfig{
		AdminSecret: os.Getenv("ADMIN_JWT_SECRET"),
	}

	cfg.Extraction = ExtractionConfig{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        opt("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return v
}
