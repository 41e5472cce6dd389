package model

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
)

// Scorer is a trained ranking model. Implementations are immutable once
// built and safe for concurrent use, so one handle can be shared by every
// fold and request.
type Scorer interface {
	Name() string
	Predict(ctx context.Context, m domain.FeatureMatrix) ([]float64, error)
}

type Type string

const (
	Linear Type = "linear"
	RPC    Type = "rpc"
)

type Config struct {
	Type     Type          `yaml:"type"`
	Path     string        `yaml:"path,omitempty"`
	Endpoint string        `yaml:"endpoint,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

func New(cfg Config) (Scorer, error) {
	switch cfg.Type {
	case Linear:
		if cfg.Path == "" {
			return nil, fmt.Errorf("linear model requires a weights path")
		}
		return LoadLinear(cfg.Path)
	case RPC:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("rpc model requires an endpoint")
		}
		return NewRPCModel(string(RPC), cfg.Endpoint, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported model type %q, expected one of %v", cfg.Type, []Type{Linear, RPC})
	}
}
