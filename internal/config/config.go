package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port        string
	DatabaseURL string
	LayoutPath  string
	LayoutName  string
	SeedPath    string

	Speed         float64
	DwellMinutes  float64
	Trials        int
	MaxTrials     int
	TopK          int
	Workers       int
	SearchTimeout time.Duration

	PlanRateLimit float64
	PlanRateBurst int
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return d, nil
}

// Load reads the configuration from the environment.
// Call godotenv.Load first to pick up a local .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: Get("DATABASE_URL", ""),
		LayoutPath:  Get("LAYOUT_PATH", ""),
		LayoutName:  Get("LAYOUT_NAME", "jlr-plant"),
		SeedPath:    Get("SEED_PATH", "data/layouts/jlr-plant.yaml"),
	}

	var err error
	if cfg.Speed, err = GetFloat("AGV_SPEED", 0.1); err != nil {
		return Config{}, err
	}
	if cfg.DwellMinutes, err = GetFloat("DWELL_MINUTES", 2.0); err != nil {
		return Config{}, err
	}
	if cfg.Trials, err = GetInt("SEARCH_TRIALS", 200); err != nil {
		return Config{}, err
	}
	if cfg.MaxTrials, err = GetInt("SEARCH_MAX_TRIALS", 100000); err != nil {
		return Config{}, err
	}
	if cfg.TopK, err = GetInt("SEARCH_TOP_K", 5); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = GetInt("SEARCH_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.SearchTimeout, err = GetDuration("SEARCH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PlanRateLimit, err = GetFloat("PLAN_RATE_LIMIT", 5); err != nil {
		return Config{}, err
	}
	if cfg.PlanRateBurst, err = GetInt("PLAN_RATE_BURST", 10); err != nil {
		return Config{}, err
	}

	if cfg.Speed <= 0 {
		return Config{}, fmt.Errorf("config: AGV_SPEED must be positive, got %v", cfg.Speed)
	}
	if cfg.DwellMinutes < 0 {
		return Config{}, fmt.Errorf("config: DWELL_MINUTES must be non-negative, got %v", cfg.DwellMinutes)
	}
	if cfg.Trials < 1 || cfg.TopK < 1 || cfg.Workers < 1 {
		return Config{}, fmt.Errorf(
			"config: SEARCH_TRIALS, SEARCH_TOP_K and SEARCH_WORKERS must be positive, got %d, %d, %d",
			cfg.Trials, cfg.TopK, cfg.Workers,
		)
	}

	if cfg.Trials > cfg.MaxTrials {
		return Config{}, fmt.Errorf("config: SEARCH_TRIALS %d exceeds SEARCH_MAX_TRIALS %d", cfg.Trials, cfg.MaxTrials)
	}
	if cfg.SearchTimeout <= 0 {
		return Config{}, fmt.Errorf("config: SEARCH_TIMEOUT must be positive, got %v", cfg.SearchTimeout)
	}

	return cfg, nil
}
