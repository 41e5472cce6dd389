package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{
				"error": ve.Error(),
				"title": title(ve),
			})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err, "path", c.Path())
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func title(ve *ValidationError) string {
	switch {
	case errors.Is(ve, ErrShapeMismatch):
		return "shape mismatch"
	case errors.Is(ve, ErrEmptyInput):
		return "empty input"
	case errors.Is(ve, ErrInvalidRange):
		return "invalid range"
	case errors.Is(ve, ErrQueryMismatch):
		return "query mismatch"
	default:
		return "validation error"
	}
}
