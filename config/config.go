package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	APIBase        string
	RequestTimeout time.Duration
	MapShapefile   string
	LoggingConfig  LoggingConfig
	ViewConfig     ViewConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// ViewConfig holds map and panel behaviour
type ViewConfig struct {
	DefaultLat       float64
	DefaultLon       float64
	DefaultZoom      float64
	FocusZoom        float64 // zoom used when jumping to a single airport
	MaxRoutesDisplay int
	SearchDebounce   time.Duration
	SearchLimit      int
	HighlightFor     time.Duration
	TopHubs          int
	DefaultRadiusKm  float64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := &Config{
		APIBase:        getEnv("AIRMAP_API_BASE", "http://localhost:8000/api"),
		RequestTimeout: getEnvAsDuration("AIRMAP_TIMEOUT", 15*time.Second),
		MapShapefile:   getEnv("AIRMAP_MAP_SHAPEFILE", ""),
		LoggingConfig: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
		ViewConfig: ViewConfig{
			DefaultLat:       getEnvAsFloat("AIRMAP_DEFAULT_LAT", 53.35),
			DefaultLon:       getEnvAsFloat("AIRMAP_DEFAULT_LON", -6.26),
			DefaultZoom:      getEnvAsFloat("AIRMAP_DEFAULT_ZOOM", 5),
			FocusZoom:        getEnvAsFloat("AIRMAP_FOCUS_ZOOM", 10),
			MaxRoutesDisplay: getEnvAsInt("AIRMAP_MAX_ROUTES", 50),
			SearchDebounce:   getEnvAsDuration("AIRMAP_SEARCH_DEBOUNCE", 300*time.Millisecond),
			SearchLimit:      getEnvAsInt("AIRMAP_SEARCH_LIMIT", 10),
			HighlightFor:     getEnvAsDuration("AIRMAP_HIGHLIGHT", 800*time.Millisecond),
			TopHubs:          getEnvAsInt("AIRMAP_TOP_HUBS", 10),
			DefaultRadiusKm:  getEnvAsFloat("AIRMAP_DEFAULT_RADIUS_KM", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading the environment.
func Default() *Config {
	return &Config{
		APIBase:        "http://localhost:8000/api",
		RequestTimeout: 15 * time.Second,
		LoggingConfig:  LoggingConfig{Level: "info", Format: "text"},
		ViewConfig: ViewConfig{
			DefaultLat:       53.35,
			DefaultLon:       -6.26,
			DefaultZoom:      5,
			FocusZoom:        10,
			MaxRoutesDisplay: 50,
			SearchDebounce:   300 * time.Millisecond,
			SearchLimit:      10,
			HighlightFor:     800 * time.Millisecond,
			TopHubs:          10,
			DefaultRadiusKm:  100,
		},
	}
}

// Validate checks values that would make the client misbehave.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base %q", c.APIBase)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ViewConfig.MaxRoutesDisplay <= 0 {
		return fmt.Errorf("max routes must be positive, got %d", c.ViewConfig.MaxRoutesDisplay)
	}
	if c.ViewConfig.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.ViewConfig.SearchLimit)
	}
	if c.ViewConfig.DefaultRadiusKm <= 0 {
		return fmt.Errorf("default radius must be positive, got %v", c.ViewConfig.DefaultRadiusKm)
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
