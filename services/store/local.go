package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/pkg/errors"
)

// LocalStore keeps the dataset as a CSV file under the data directory.
type LocalStore struct {
	path        string
	dateLayouts []string
	log         *logger.Logger
}

// NewLocalStore creates a store backed by the local filesystem.
func NewLocalStore(cfg *config.Config) *LocalStore {
	return &LocalStore{
		path:        filepath.Join(cfg.DataDirName, cfg.DataFilename),
		dateLayouts: cfg.DateFormats,
		log:         logger.ForStore(config.StorageLocal),
	}
}

// Load reads the CSV file. A missing file means no dataset yet.
func (s *LocalStore) Load(_ context.Context) (*dataset.Dataset, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug().Str("path", s.path).Msg("No dataset file yet")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewStorage(s.path, "read dataset file", err)
	}

	d, err := dataset.DecodeCSV(bytes.NewReader(data), s.dateLayouts)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Save writes the CSV file, creating the data directory if needed.
func (s *LocalStore) Save(_ context.Context, d *dataset.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.NewStorage(s.path, "create data directory", err)
	}

	var buf bytes.Buffer
	if err := dataset.EncodeCSV(&buf, d); err != nil {
		return errors.NewStorage(s.path, "encode dataset", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return errors.NewStorage(s.path, "write dataset file", err)
	}

	s.log.Debug().
		Str("path", s.path).
		Int("records", len(d.Records)).
		Msg("Dataset written")
	return nil
}
