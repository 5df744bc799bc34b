// Package minio fetches substance catalogs from S3-compatible object storage.
// A catalog object is addressed as s3://bucket/key.
package minio

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// URIScheme prefixes catalog paths served from object storage.
const URIScheme = "s3://"

// MaxObjectSize bounds how much of a catalog object is read.
const MaxObjectSize = 16 << 20

// MinIOConfig holds the connection settings of the object store.
type MinIOConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
}

// ObjectURI is a parsed s3://bucket/key reference.
type ObjectURI struct {
	Bucket string
	Key    string
}

func (u ObjectURI) String() string {
	return URIScheme + u.Bucket + "/" + u.Key
}

// IsObjectURI reports whether path names an object rather than a local file.
func IsObjectURI(path string) bool {
	return strings.HasPrefix(strings.ToLower(path), URIScheme)
}

// ParseObjectURI splits s3://bucket/key. Both parts must be non-empty.
func ParseObjectURI(path string) (ObjectURI, error) {
	if !IsObjectURI(path) {
		return ObjectURI{}, errors.New(errors.ErrCodeValidation, "object path must start with "+URIScheme).
			WithDetail("path=" + path)
	}
	parts := strings.SplitN(path[len(URIScheme):], "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ObjectURI{}, errors.New(errors.ErrCodeValidation, "object path must be in format 's3://bucket/key'").
			WithDetail("path=" + path)
	}
	return ObjectURI{Bucket: parts[0], Key: parts[1]}, nil
}

// objectOpener opens one object for reading.
type objectOpener func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

// MinIOClient reads catalog objects.
type MinIOClient struct {
	open    objectOpener
	config  *MinIOConfig
	logger  logging.Logger
	maxSize int64
}

// NewMinIOClient builds a client for cfg. No request is made until Fetch.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeValidation, "object store endpoint is required")
	}
	applyDefaults(cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	open := func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	}
	return newClient(open, cfg, log), nil
}

func newClient(open objectOpener, cfg *MinIOConfig, log logging.Logger) *MinIOClient {
	return &MinIOClient{open: open, config: cfg, logger: log, maxSize: MaxObjectSize}
}

// Fetch reads the whole object at uri. A missing bucket or key yields
// CodeCatalogLoadFailed; objects larger than MaxObjectSize are rejected.
func (c *MinIOClient) Fetch(ctx context.Context, uri ObjectURI) ([]byte, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	obj, err := c.open(ctx, uri.Bucket, uri.Key)
	if err != nil {
		return nil, c.mapError(err, uri)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, c.maxSize+1))
	if err != nil {
		return nil, c.mapError(err, uri)
	}
	if int64(len(data)) > c.maxSize {
		return nil, errors.Newf(errors.CodeCatalogLoadFailed, "catalog object exceeds %d bytes", c.maxSize).
			WithDetail("object=" + uri.String())
	}

	c.logger.Debug("Catalog object fetched",
		logging.String("object", uri.String()),
		logging.Int("bytes", len(data)),
		logging.Duration("elapsed", time.Since(start)))
	return data, nil
}

func (c *MinIOClient) mapError(err error, uri ObjectURI) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return errors.Wrap(err, errors.CodeCatalogLoadFailed, "catalog object not found").
			WithDetail("object=" + uri.String())
	case "AccessDenied":
		return errors.Wrap(err, errors.CodeCatalogLoadFailed, "access to catalog object denied").
			WithDetail("object=" + uri.String())
	}
	return errors.Wrap(err, errors.CodeCatalogLoadFailed, "failed to read catalog object").
		WithDetail("object=" + uri.String())
}

//Personal.AI order the ending
