package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	CatalogPath      string
	CatalogCacheSize int
	CatalogRetryMax  time.Duration
	JitterSeed       uint64

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Guide endpoint settings.
	GuideTopK      int
	GuideRateLimit float64
	GuideRateBurst int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	retryMax, err := time.ParseDuration(sharedcfg.EnvOrDefault("CATALOG_RETRY_MAX", "30s"))
	if err != nil || retryMax <= 0 {
		return nil, errors.New("invalid CATALOG_RETRY_MAX")
	}

	jitterSeed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("JITTER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid JITTER_SEED: must be a non-negative integer")
	}

	cacheSize, err := parsePositiveInt("CATALOG_CACHE_SIZE", 8)
	if err != nil {
		return nil, err
	}
	topK, err := parsePositiveInt("GUIDE_TOP_K", 5)
	if err != nil {
		return nil, err
	}
	burst, err := parsePositiveInt("GUIDE_RATE_BURST", 10)
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("GUIDE_RATE_LIMIT", "5"), 64)
	if err != nil || rateLimit <= 0 {
		return nil, errors.New("invalid GUIDE_RATE_LIMIT: must be a positive number")
	}

	cfg := &Config{
		CatalogPath:      sharedcfg.EnvOrDefault("CATALOG_PATH", "festival.CSV"),
		CatalogCacheSize: cacheSize,
		CatalogRetryMax:  retryMax,
		JitterSeed:       jitterSeed,
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		GuideTopK:        topK,
		GuideRateLimit:   rateLimit,
		GuideRateBurst:   burst,
	}
	return cfg, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
