package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backend selectors
const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageRedis = "redis"
)

// Cache backend selectors
const (
	CacheMemory   = "memory"
	CacheMemcache = "memcache"
)

// Config represents the application configuration
type Config struct {
	// Source configuration
	BaseListingURL string
	DetailBaseURL  string
	UserAgent      string

	// Fetch policy
	MaxRetries       int
	BackoffBase      time.Duration
	PageSleep        time.Duration
	BlockTime        time.Duration
	DateFormats      []string
	DefaultImageLink string

	// Storage configuration
	StorageBackend string
	DataDirName    string
	DataFilename   string

	// S3 backend
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	// Redis backend
	RedisAddr      string
	RedisDB        int
	RedisKeyPrefix string

	// Cache configuration
	CacheBackend string
	MemcacheAddr string

	// Worker configuration (0 means run once and exit)
	CrawlInterval time.Duration

	// Observability
	MetricsAddr string

	// Environment
	Environment string
}

// defaultDateFormats lists the accepted date layouts, tried in order.
var defaultDateFormats = []string{
	"Mon Jan 02, 2006",
	"Mon Jan 02, 2006 15:04 UTC",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	maxRetries, _ := strconv.Atoi(getEnv("MAX_RETRIES", "5"))
	backoffBase, _ := strconv.Atoi(getEnv("BACKOFF_BASE_SECONDS", "2"))
	pageSleep, _ := strconv.Atoi(getEnv("PAGE_SLEEP_SECONDS", "2"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "60"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "0"))
	useSSL, _ := strconv.ParseBool(getEnv("S3_USE_SSL", "true"))

	return Config{
		BaseListingURL: getEnv("BASE_LISTING_URL", "https://nextspaceflight.com/launches/past/?page="),
		DetailBaseURL:  getEnv("DETAIL_BASE_URL", "https://nextspaceflight.com/launches/details/"),
		UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:108.0) Gecko/20100101 Firefox/108.0"),

		MaxRetries:       maxRetries,
		BackoffBase:      time.Duration(backoffBase) * time.Second,
		PageSleep:        time.Duration(pageSleep) * time.Second,
		BlockTime:        time.Duration(blockTime) * time.Second,
		DateFormats:      defaultDateFormats,
		DefaultImageLink: getEnv("DEFAULT_IMAGE_LINK", "https://storage.googleapis.com/nextspaceflight/media/rockets/default.jpg"),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageLocal),
		DataDirName:    getEnv("DATA_DIR", "data"),
		DataFilename:   getEnv("DATA_FILENAME", "nsf_past_launches.csv"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Bucket:    getEnv("S3_BUCKET", "app-space-exploration-bucket"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3UseSSL:    useSSL,

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        redisDB,
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "launchharvest"),

		CacheBackend: getEnv("CACHE_BACKEND", CacheMemory),
		MemcacheAddr: getEnv("MEMCACHE_ADDR", "localhost:11211"),

		CrawlInterval: time.Duration(crawlInterval) * time.Second,

		MetricsAddr: getEnv("METRICS_ADDR", ""),

		Environment: getEnv("HARVEST_ENVIRONMENT", "development"),
	}
}

// Validate ensures the configuration values are coherent
func (c *Config) Validate() error {
	if c.BaseListingURL == "" {
		return fmt.Errorf("base listing URL cannot be empty")
	}
	if c.DetailBaseURL == "" {
		return fmt.Errorf("detail base URL cannot be empty")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max retries must be positive")
	}
	if c.BackoffBase <= 0 {
		return fmt.Errorf("backoff base must be positive")
	}
	if c.PageSleep < 0 {
		return fmt.Errorf("page sleep cannot be negative")
	}
	if len(c.DateFormats) == 0 {
		return fmt.Errorf("date format list cannot be empty")
	}
	if c.DataFilename == "" {
		return fmt.Errorf("data filename cannot be empty")
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.DataDirName == "" {
			return fmt.Errorf("data directory cannot be empty for local storage")
		}
	case StorageS3:
		if c.S3Endpoint == "" || c.S3Bucket == "" {
			return fmt.Errorf("s3 storage requires S3_ENDPOINT and S3_BUCKET")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis storage requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.CacheBackend != CacheMemory && c.CacheBackend != CacheMemcache {
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
