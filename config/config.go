package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting of the storefront service.
type Config struct {
	// General
	Port        string
	Environment string
	LogLevel    string

	// PostgreSQL
	DatabaseURL string
	DBTimeout   time.Duration

	// Redis
	RedisAddr       string
	CacheTimeout    time.Duration
	ProductCacheTTL time.Duration
	ShopperDataTTL  time.Duration

	// Staff sessions
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Remote catalog API
	CatalogAPIURL     string
	CatalogAPIToken   string
	CatalogAPITimeout time.Duration
	StrictPayloads    bool

	// Search index
	SearchRefreshInterval time.Duration

	// Listing route the filter URLs are built on.
	ListingBasePath string
}

// LoadConfig reads the configuration from the environment.
// Required variables missing from the environment stop the process.
func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:    getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,
		ProductCacheTTL: getDurationEnv("PRODUCT_CACHE_TTL_SEC", 300) * time.Second,
		ShopperDataTTL:  getDurationEnv("SHOPPER_DATA_TTL_HOURS", 720) * time.Hour,

		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		CatalogAPIURL:     mustGetEnv("CATALOG_API_URL"),
		CatalogAPIToken:   getEnv("CATALOG_API_TOKEN", ""),
		CatalogAPITimeout: getDurationEnv("CATALOG_API_TIMEOUT_SEC", 10) * time.Second,
		StrictPayloads:    getBoolEnv("STRICT_PAYLOADS", false),

		SearchRefreshInterval: getDurationEnv("SEARCH_REFRESH_INTERVAL_SEC", 300) * time.Second,

		ListingBasePath: getEnv("LISTING_BASE_PATH", "/products"),
	}

	return cfg
}

// Database holds the settings the command-line tools need to reach PostgreSQL.
type Database struct {
	URL     string
	Timeout time.Duration
}

// LoadDatabaseConfig reads only the PostgreSQL settings, so the migration and
// indexing tools start without the API secrets.
func LoadDatabaseConfig() Database {
	return Database{
		URL:     mustGetEnv("DATABASE_URL"),
		Timeout: getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
	}
}

// Catalog holds the remote catalog API settings.
type Catalog struct {
	URL     string
	Token   string
	Timeout time.Duration
	Strict  bool
}

// LoadCatalogConfig reads only the remote catalog settings.
func LoadCatalogConfig() Catalog {
	return Catalog{
		URL:     mustGetEnv("CATALOG_API_URL"),
		Token:   getEnv("CATALOG_API_TOKEN", ""),
		Timeout: getDurationEnv("CATALOG_API_TIMEOUT_SEC", 10) * time.Second,
		Strict:  getBoolEnv("STRICT_PAYLOADS", false),
	}
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	log.Fatalf("configuration error: environment variable %s must be set", key)
	return ""
}

// getDurationEnv reads an integer variable as a unit count; callers multiply by the unit.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("warning: %s ('%s') is not a valid integer, using default (%d)", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("warning: %s ('%s') is not a valid boolean, using default (%t)", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
