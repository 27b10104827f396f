package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth on /api routes.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64
	UploadWait     time.Duration

	// Session and job state
	SessionTTL time.Duration
	JobTTL     time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Analysis defaults
	DefaultContextChars     int
	DefaultSummarySentences int
	DefaultKeywords         int
	CacheEntries            int

	// Per-client rate limiting. RateLimitRPS <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string
}

// fileConfig mirrors Config for the optional TOML file. Durations are
// strings in time.ParseDuration syntax.
type fileConfig struct {
	Port                    *string  `toml:"port"`
	APIKey                  *string  `toml:"api_key"`
	WorkerCount             *int     `toml:"worker_count"`
	MaxQueueSize            *int     `toml:"max_queue_size"`
	MaxUploadBytes          *int64   `toml:"max_upload_bytes"`
	UploadWait              *string  `toml:"upload_wait"`
	SessionTTL              *string  `toml:"session_ttl"`
	JobTTL                  *string  `toml:"job_ttl"`
	PDFFallbackPdftotext    *bool    `toml:"pdf_fallback_pdftotext"`
	DefaultContextChars     *int     `toml:"default_context_chars"`
	DefaultSummarySentences *int     `toml:"default_summary_sentences"`
	DefaultKeywords         *int     `toml:"default_keywords"`
	CacheEntries            *int     `toml:"cache_entries"`
	RateLimitRPS            *float64 `toml:"rate_limit_rps"`
	RateLimitBurst          *int     `toml:"rate_limit_burst"`
	LogLevel                *string  `toml:"log_level"`
	LogFormat               *string  `toml:"log_format"`
	LogFile                 *string  `toml:"log_file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                    "8090",
		WorkerCount:             4,
		MaxQueueSize:            100,
		MaxUploadBytes:          16 << 20, // 16MB
		UploadWait:              2 * time.Minute,
		SessionTTL:              24 * time.Hour,
		JobTTL:                  time.Hour,
		PDFFallbackPdftotext:    true,
		DefaultContextChars:     150,
		DefaultSummarySentences: 15,
		DefaultKeywords:         20,
		CacheEntries:            256,
		RateLimitRPS:            10,
		RateLimitBurst:          20,
		LogLevel:                "info",
		LogFormat:               "json",
	}
}

// Load builds the configuration from defaults, the TOML file named by
// CONFIG_FILE and finally the environment. A .env file in the working
// directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("STUDYNOTES_API_KEY", cfg.APIKey)

	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)

	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.UploadWait = envDuration("UPLOAD_WAIT", cfg.UploadWait)

	cfg.SessionTTL = envDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)

	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	cfg.DefaultContextChars = envInt("DEFAULT_CONTEXT_CHARS", cfg.DefaultContextChars)
	cfg.DefaultSummarySentences = envInt("DEFAULT_SUMMARY_SENTENCES", cfg.DefaultSummarySentences)
	cfg.DefaultKeywords = envInt("DEFAULT_KEYWORDS", cfg.DefaultKeywords)
	cfg.CacheEntries = envInt("CACHE_ENTRIES", cfg.CacheEntries)

	cfg.RateLimitRPS = envFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = envOr("LOG_FILE", cfg.LogFile)

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 16 << 20
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	set(&c.Port, f.Port)
	set(&c.APIKey, f.APIKey)
	set(&c.WorkerCount, f.WorkerCount)
	set(&c.MaxQueueSize, f.MaxQueueSize)
	set(&c.MaxUploadBytes, f.MaxUploadBytes)
	set(&c.PDFFallbackPdftotext, f.PDFFallbackPdftotext)
	set(&c.DefaultContextChars, f.DefaultContextChars)
	set(&c.DefaultSummarySentences, f.DefaultSummarySentences)
	set(&c.DefaultKeywords, f.DefaultKeywords)
	set(&c.CacheEntries, f.CacheEntries)
	set(&c.RateLimitRPS, f.RateLimitRPS)
	set(&c.RateLimitBurst, f.RateLimitBurst)
	set(&c.LogLevel, f.LogLevel)
	set(&c.LogFormat, f.LogFormat)
	set(&c.LogFile, f.LogFile)

	for _, d := range []struct {
		name string
		src  *string
		dst  *time.Duration
	}{
		{"upload_wait", f.UploadWait, &c.UploadWait},
		{"session_ttl", f.SessionTTL, &c.SessionTTL},
		{"job_ttl", f.JobTTL, &c.JobTTL},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("config file %s: %s: %w", path, d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DefaultContextChars < 0 {
		errs = append(errs, errors.New("DEFAULT_CONTEXT_CHARS must not be negative"))
	}
	if c.DefaultSummarySentences <= 0 {
		errs = append(errs, errors.New("DEFAULT_SUMMARY_SENTENCES must be positive"))
	}
	if c.DefaultKeywords <= 0 {
		errs = append(errs, errors.New("DEFAULT_KEYWORDS must be positive"))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
