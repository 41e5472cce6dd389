package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgserver "github.com/DjordjeVuckovic/ltr-eval/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{Port: "8080", CorsOrigins: []string{"*"}}
}

func TestServer_HealthChecks(t *testing.T) {
	tests := []struct {
		name     string
		healthy  bool
		wantCode int
	}{
		{name: "healthy", healthy: true, wantCode: http.StatusOK},
		{name: "unhealthy", healthy: false, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := pkgserver.HealthCheckerFunc(func(ctx context.Context) bool { return tt.healthy })
			s := New(testConfig(), hc).SetupMiddlewares().SetupHealthChecks("/health")

			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestServer_ErrorHandler(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupErrorHandler()
	s.Echo.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "short and stout")
}

func TestServer_DisablesHTTP2(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker())
	assert.True(t, s.Echo.DisableHTTP2)

	cfg := testConfig()
	cfg.UseHttp2 = true
	s = New(cfg, pkgserver.NewOkHealthChecker())
	assert.False(t, s.Echo.DisableHTTP2)
}
