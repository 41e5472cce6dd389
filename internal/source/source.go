// Package source loads ranking datasets from CSV files, Postgres feature
// tables or Elasticsearch feature indices, and writes them back to the
// latter two.
package source

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source/csvfile"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source/es"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source/pg"
)

type Source interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Sink persists a dataset into a feature store.
type Sink interface {
	Save(ctx context.Context, ds *domain.Dataset) error
}

type Type string

const (
	CSV           Type = "csv"
	Postgres      Type = "pg"
	Elasticsearch Type = "es"
)

type Config struct {
	Type           Type     `yaml:"type"`
	Path           string   `yaml:"path,omitempty"`
	FeatureColumns []string `yaml:"feature_columns,omitempty"`

	ConnStr string `yaml:"conn_str,omitempty"`
	Table   string `yaml:"table,omitempty"`

	Addresses []string `yaml:"addresses,omitempty"`
	Index     string   `yaml:"index,omitempty"`
	Username  string   `yaml:"username,omitempty"`
	Password  string   `yaml:"password,omitempty"`
	BatchSize int      `yaml:"batch_size,omitempty"`
}

// Closer releases connections held by a source or sink. It is a no-op for
// file sources.
type Closer func()

func (c Config) Validate() error {
	switch c.Type {
	case CSV:
		if c.Path == "" {
			return fmt.Errorf("csv source requires a path")
		}
	case Postgres:
		if c.ConnStr == "" {
			return fmt.Errorf("pg source requires a connection string")
		}
	case Elasticsearch:
		if len(c.Addresses) == 0 {
			return fmt.Errorf("es source requires at least one address")
		}
	default:
		return fmt.Errorf("unsupported source type %q, expected one of %v", c.Type, []Type{CSV, Postgres, Elasticsearch})
	}
	return nil
}

func (c Config) esConfig() es.ClientConfig {
	return es.ClientConfig{
		Addresses: c.Addresses,
		IndexName: c.Index,
		Username:  c.Username,
		Password:  c.Password,
	}
}

func New(ctx context.Context, cfg Config) (Source, Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Type {
	case Postgres:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.ConnStr})
		if err != nil {
			return nil, nil, err
		}
		return pg.NewSource(pool, cfg.Table, cfg.FeatureColumns), pool.Close, nil
	case Elasticsearch:
		src, err := es.NewSource(cfg.esConfig(), cfg.FeatureColumns, cfg.BatchSize)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	default:
		return csvfile.New(cfg.Path, cfg.FeatureColumns), func() {}, nil
	}
}

func NewSink(ctx context.Context, cfg Config) (Sink, Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Type {
	case Postgres:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.ConnStr})
		if err != nil {
			return nil, nil, err
		}
		return pg.NewWriter(pool, cfg.Table), pool.Close, nil
	case Elasticsearch:
		indexer, err := es.NewIndexer(ctx, cfg.esConfig())
		if err != nil {
			return nil, nil, err
		}
		return indexer, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%s cannot be used as an import target", cfg.Type)
	}
}
