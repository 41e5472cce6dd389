// Package main LTR Eval API
// @title LTR Eval API
// @version 1.0
// @description Re-ranks search results with a learning-to-rank model and measures ranking quality with NDCG
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/ltr-eval/docs"
	"github.com/DjordjeVuckovic/ltr-eval/internal/api/router"
	"github.com/DjordjeVuckovic/ltr-eval/internal/api/server"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	pkgserver "github.com/DjordjeVuckovic/ltr-eval/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	scorer, err := model.New(cfg.Model)
	if err != nil {
		slog.Error("Failed to load model", "type", cfg.Model.Type, "error", err)
		os.Exit(1)
	}
	slog.Info("Model loaded", "name", scorer.Name(), "type", cfg.Model.Type)

	s := server.New(cfg, pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "LTR Eval API is running")
	})

	router.NewRankingRouter(s.Echo, scorer).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
