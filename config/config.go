package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

// Config is built once at startup and handed to the components that need it.
// Nothing mutates it afterwards.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string
	APIPrefix   string
	// CORS
	AllowedOrigins []string
	// Storage
	StorageDriver     string
	DBUrl             string
	DBMaxConns        int
	DBMinConns        int
	DBAcquireTimeout  time.Duration // wait for a pooled connection
	DBConnectTimeout  time.Duration // dial and handshake of a new connection
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration
	DBSimpleProtocol  bool // PgBouncer transaction mode needs the simple protocol
	AutoMigrate       bool
	RequestTimeout    time.Duration
	// Cache
	CacheBackend        string
	CacheTTL            time.Duration
	CacheMemoryCapacity int
	RedisURL            string
	RedisPassword       string
	// Security
	BcryptCost         int
	RateLimitPerMinute int
	// Logging
	LogLevel  string
	LogFormat string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppName:        getEnv("APP_NAME", "Hireova API"),
		AppVersion:     getEnv("APP_VERSION", "1.0.0"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8000"),
		APIPrefix:      "/" + strings.Trim(getEnv("API_PREFIX", "/api/v1"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		// Storage
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DBUrl:             getEnv("DATABASE_URL", ""),
		DBMaxConns:        getEnvInt("DATABASE_POOL_SIZE", 20),
		DBMinConns:        getEnvInt("DATABASE_POOL_MIN", 2),
		DBAcquireTimeout:  getEnvDuration("DATABASE_ACQUIRE_TIMEOUT", 5*time.Second),
		DBConnectTimeout:  getEnvDuration("DATABASE_CONNECT_TIMEOUT", 10*time.Second),
		DBMaxConnLifetime: getEnvDuration("DATABASE_POOL_RECYCLE", time.Hour),
		DBMaxConnIdleTime: getEnvDuration("DATABASE_POOL_IDLE", 30*time.Minute),
		DBSimpleProtocol:  getEnvBool("DATABASE_SIMPLE_PROTOCOL", true),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", true),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		// Cache
		CacheBackend:        strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
		CacheTTL:            time.Duration(getEnvInt("REDIS_CACHE_TTL", 3600)) * time.Second,
		CacheMemoryCapacity: getEnvInt("CACHE_MEMORY_CAPACITY", 10000),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		// Security
		BcryptCost:         getEnvInt("BCRYPT_ROUNDS", 12),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.StorageDriver == StorageDriverMemory {
		log.Println("WARNING: STORAGE_DRIVER=memory. Data is lost on restart.")
	}

	return cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBUrl == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.CacheBackend {
	case CacheBackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when CACHE_BACKEND=redis"))
		}
	case CacheBackendMemory:
		if c.CacheMemoryCapacity <= 0 {
			errs = append(errs, errors.New("CACHE_MEMORY_CAPACITY must be positive"))
		}
	case CacheBackendNone:
	default:
		errs = append(errs, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend))
	}

	if c.DBMaxConns < 1 {
		errs = append(errs, errors.New("DATABASE_POOL_SIZE must be at least 1"))
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, errors.New("DATABASE_POOL_MIN must be between 0 and DATABASE_POOL_SIZE"))
	}
	if c.DBAcquireTimeout <= 0 {
		errs = append(errs, errors.New("DATABASE_ACQUIRE_TIMEOUT must be positive"))
	}
	if c.DBConnectTimeout < 0 {
		errs = append(errs, errors.New("DATABASE_CONNECT_TIMEOUT must not be negative"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_ROUNDS must be between 4 and 31"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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

// getEnvDuration accepts Go durations ("5s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
