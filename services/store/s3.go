package store

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/pkg/errors"
)

// S3Store keeps the dataset as a CSV object in an S3-compatible bucket.
type S3Store struct {
	client      *minio.Client
	bucket      string
	object      string
	dateLayouts []string
	log         *logger.Logger
}

// NewS3Store creates a store backed by an S3-compatible object store.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, errors.NewStorage(cfg.S3Endpoint, "create s3 client", err)
	}

	return &S3Store{
		client:      client,
		bucket:      cfg.S3Bucket,
		object:      cfg.DataFilename,
		dateLayouts: cfg.DateFormats,
		log:         logger.ForStore(config.StorageS3),
	}, nil
}

// Load reads the dataset object. A missing key means no dataset yet.
func (s *S3Store) Load(ctx context.Context) (*dataset.Dataset, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, errors.NewStorage(s.object, "get dataset object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			s.log.Debug().Str("object", s.object).Msg("No dataset object yet")
			return nil, false, nil
		}
		return nil, false, errors.NewStorage(s.object, "read dataset object", err)
	}

	d, err := dataset.DecodeCSV(bytes.NewReader(data), s.dateLayouts)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Save uploads the dataset, replacing the previous object.
func (s *S3Store) Save(ctx context.Context, d *dataset.Dataset) error {
	var buf bytes.Buffer
	if err := dataset.EncodeCSV(&buf, d); err != nil {
		return errors.NewStorage(s.object, "encode dataset", err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, s.object,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return errors.NewStorage(s.object, "put dataset object", err)
	}

	s.log.Debug().
		Str("object", s.object).
		Int("records", len(d.Records)).
		Msg("Dataset uploaded")
	return nil
}
