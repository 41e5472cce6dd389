package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/pkg/config/env"
	"github.com/DjordjeVuckovic/ltr-eval/pkg/utils"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	Model       model.Config
}

func LoadConfig() (*Config, error) {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/ltr_api/.env")
	if err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	useHttp2 := os.Getenv("USE_HTTP2") == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	var origins []string
	if corsOriginsEnv := os.Getenv("CORS_ORIGINS"); corsOriginsEnv != "" {
		origins = strings.Split(corsOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		origins = utils.RemoveEmptyStrings(origins)
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	modelCfg, err := loadModelConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
		Model:       modelCfg,
	}, nil
}

func loadModelConfig() (model.Config, error) {
	cfg := model.Config{
		Type:     model.Type(os.Getenv("MODEL_TYPE")),
		Path:     os.Getenv("MODEL_PATH"),
		Endpoint: os.Getenv("MODEL_ENDPOINT"),
	}
	if cfg.Type == "" {
		cfg.Type = model.Linear
	}

	if timeout := os.Getenv("MODEL_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid MODEL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
