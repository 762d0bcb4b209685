package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cfg is the global configuration loaded at startup.
var Cfg = defaults()

// Config holds all application configuration.
type Config struct {
	// Server
	Port    string
	BaseURL string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Analytics
	GTMID string

	// Rate limiter
	RateLimitRPS   int
	RateLimitBurst int

	// Gzip
	GzipEnabled bool

	// Outbound link checker
	LinkCheckEnabled  bool
	LinkCheckInterval time.Duration
	LinkCheckDelay    time.Duration
	UserAgent         string
	AdminAPIKey       string

	// Content
	BlogDir           string
	StateDataReviewed string

	// Plan PDF
	CounterFile  string
	PDFSelfCheck bool
}

// Load reads .env (if present) and populates Cfg from environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	Cfg = Config{
		Port:    envOr("PORT", "8080"),
		BaseURL: envOr("BASE_URL", "https://insurancefinder.com"),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     envOr("SENTRY_RELEASE", "insurancefinder@1.0.0"),

		GTMID: envOr("GTM_ID", ""),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 30),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 60),

		GzipEnabled: envBool("GZIP_ENABLED", true),

		LinkCheckEnabled:  envBool("LINKCHECK_ENABLED", true),
		LinkCheckInterval: envDuration("LINKCHECK_INTERVAL", 24*time.Hour),
		LinkCheckDelay:    envDuration("LINKCHECK_DELAY", 5*time.Second),
		UserAgent:         envOr("USER_AGENT", "Mozilla/5.0 (compatible; InsuranceFinderBot/1.0; +https://insurancefinder.com)"),
		AdminAPIKey:       os.Getenv("ADMIN_API_KEY"),

		BlogDir:           envOr("BLOG_DIR", "content/blog"),
		StateDataReviewed: envOr("STATE_DATA_REVIEWED", "Feb 2026"),

		CounterFile:  envOr("COUNTER_FILE", "counter.json"),
		PDFSelfCheck: envBool("PDF_SELF_CHECK", true),
	}

	log.Printf("config: loaded (port=%s, linkcheck=%v, pdf_self_check=%v, gtm=%s)",
		Cfg.Port, Cfg.LinkCheckEnabled, Cfg.PDFSelfCheck, maskGTM(Cfg.GTMID))
}

// defaults mirrors Load without touching the environment, so packages and
// tests that never call Load still see sane values.
func defaults() Config {
	return Config{
		Port:              "8080",
		BaseURL:           "https://insurancefinder.com",
		SentryEnvironment: "development",
		RateLimitRPS:      30,
		RateLimitBurst:    60,
		LinkCheckInterval: 24 * time.Hour,
		LinkCheckDelay:    5 * time.Second,
		UserAgent:         "Mozilla/5.0 (compatible; InsuranceFinderBot/1.0; +https://insurancefinder.com)",
		BlogDir:           "content/blog",
		StateDataReviewed: "Feb 2026",
		CounterFile:       "counter.json",
		PDFSelfCheck:      true,
	}
}

func maskGTM(id string) string {
	if id == "" {
		return "(disabled)"
	}
	return id
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
