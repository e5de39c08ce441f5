package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://nextspaceflight.com/launches/past/?page=", config.BaseListingURL)
	assert.Equal(t, "https://nextspaceflight.com/launches/details/", config.DetailBaseURL)
	assert.Equal(t, 5, config.MaxRetries)
	assert.Equal(t, 2*time.Second, config.BackoffBase)
	assert.Equal(t, 2*time.Second, config.PageSleep)
	assert.Equal(t, StorageLocal, config.StorageBackend)
	assert.Equal(t, "data", config.DataDirName)
	assert.Equal(t, "nsf_past_launches.csv", config.DataFilename)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, CacheMemory, config.CacheBackend)
	assert.Equal(t, time.Duration(0), config.CrawlInterval)
	assert.Len(t, config.DateFormats, 4)

	// Test with environment variables
	os.Setenv("BASE_LISTING_URL", "https://example.com/past/?page=")
	os.Setenv("MAX_RETRIES", "3")
	os.Setenv("BACKOFF_BASE_SECONDS", "1")
	os.Setenv("STORAGE_BACKEND", "redis")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("CRAWL_INTERVAL_SECONDS", "30")

	config = LoadConfig()
	assert.Equal(t, "https://example.com/past/?page=", config.BaseListingURL)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 1*time.Second, config.BackoffBase)
	assert.Equal(t, StorageRedis, config.StorageBackend)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 30*time.Second, config.CrawlInterval)

	// Clean up
	os.Unsetenv("BASE_LISTING_URL")
	os.Unsetenv("MAX_RETRIES")
	os.Unsetenv("BACKOFF_BASE_SECONDS")
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("CRAWL_INTERVAL_SECONDS")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	bad := config
	bad.MaxRetries = 0
	assert.Error(t, bad.Validate())

	bad = config
	bad.StorageBackend = "gcs"
	assert.Error(t, bad.Validate())

	bad = config
	bad.StorageBackend = StorageS3
	bad.S3Endpoint = ""
	assert.Error(t, bad.Validate())

	bad = config
	bad.CacheBackend = "bolt"
	assert.Error(t, bad.Validate())
}
