package store

import (
	"bytes"
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/pkg/errors"
)

// RedisStore keeps the dataset as a single CSV blob in redis.
type RedisStore struct {
	client      *redis.Client
	key         string
	dateLayouts []string
	log         *logger.Logger
}

// NewRedisStore creates a store backed by redis.
func NewRedisStore(cfg *config.Config) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	return &RedisStore{
		client:      client,
		key:         strings.Join([]string{cfg.RedisKeyPrefix, cfg.DataFilename}, ":"),
		dateLayouts: cfg.DateFormats,
		log:         logger.ForStore(config.StorageRedis),
	}
}

// Load reads the dataset blob. A missing key means no dataset yet.
func (s *RedisStore) Load(ctx context.Context) (*dataset.Dataset, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		s.log.Debug().Str("key", s.key).Msg("No dataset key yet")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewStorage(s.key, "get dataset key", err)
	}

	d, err := dataset.DecodeCSV(bytes.NewReader(data), s.dateLayouts)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Save writes the dataset blob without expiration.
func (s *RedisStore) Save(ctx context.Context, d *dataset.Dataset) error {
	var buf bytes.Buffer
	if err := dataset.EncodeCSV(&buf, d); err != nil {
		return errors.NewStorage(s.key, "encode dataset", err)
	}

	if err := s.client.Set(ctx, s.key, buf.Bytes(), 0).Err(); err != nil {
		return errors.NewStorage(s.key, "set dataset key", err)
	}

	s.log.Debug().
		Str("key", s.key).
		Int("records", len(d.Records)).
		Msg("Dataset stored")
	return nil
}
