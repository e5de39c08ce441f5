package store

import (
	"context"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/pkg/errors"
)

// DatasetStore persists the launch dataset as a single CSV document.
type DatasetStore interface {
	// Load reads the persisted dataset. The second return value is false
	// when no dataset has been saved yet; that is not an error.
	Load(ctx context.Context) (*dataset.Dataset, bool, error)

	// Save writes the dataset, replacing any previous version.
	Save(ctx context.Context, d *dataset.Dataset) error
}

// New creates the dataset store selected by the configuration.
func New(cfg *config.Config) (DatasetStore, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		return NewLocalStore(cfg), nil
	case config.StorageS3:
		return NewS3Store(cfg)
	case config.StorageRedis:
		return NewRedisStore(cfg), nil
	default:
		return nil, errors.NewConfiguration("unknown storage backend "+cfg.StorageBackend, nil)
	}
}
