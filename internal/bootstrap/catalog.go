// Package bootstrap turns a loaded configuration into the runtime components
// shared by the API server, the worker and the CLI.
package bootstrap

import (
	"context"
	"strings"

	"github.com/turtacn/EatTrue/internal/config"
	"github.com/turtacn/EatTrue/internal/domain/substance"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/internal/infrastructure/storage/minio"
)

// LoadCatalog returns the configured catalog: the built-in one for an empty
// path, an object-store catalog for s3://bucket/key, otherwise a local file.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, logger logging.Logger) (*substance.Catalog, error) {
	if minio.IsObjectURI(cfg.Path) {
		return fetchCatalog(ctx, cfg, logger)
	}
	return substance.Load(cfg.Path)
}

func fetchCatalog(ctx context.Context, cfg config.CatalogConfig, logger logging.Logger) (*substance.Catalog, error) {
	uri, err := minio.ParseObjectURI(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := substance.CheckFormat(uri.Key); err != nil {
		return nil, err
	}
	client, err := minio.NewMinIOClient(ObjectStoreConfig(cfg.ObjectStore), logger)
	if err != nil {
		return nil, err
	}
	data, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	return substance.Parse(data)
}

// ObjectStoreConfig maps the catalog object-store section onto the minio
// client configuration.
func ObjectStoreConfig(c config.ObjectStoreConfig) *minio.MinIOConfig {
	return &minio.MinIOConfig{
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		UseSSL:          c.UseSSL,
		Region:          c.Region,
		Timeout:         c.Timeout,
	}
}

// OpenResolver loads the configured catalog and returns a resolver over it.
// Generic terms that point at missing records are reported at Warn.
func OpenResolver(ctx context.Context, cfg config.CatalogConfig, logger logging.Logger) (*substance.Resolver, error) {
	catalog, err := LoadCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if missing := catalog.MissingGenericTargets(); len(missing) > 0 {
		logger.Warn("Generic terms reference unknown substances",
			logging.String("targets", strings.Join(missing, "; ")))
	}

	source := cfg.Path
	if source == "" {
		source = "builtin"
	}
	logger.Info("Substance catalog loaded",
		logging.String("source", source),
		logging.Int("records", catalog.Len()))
	return substance.NewResolver(catalog), nil
}

//Personal.AI order the ending
