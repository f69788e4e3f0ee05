package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/logger"
)

// respondError maps err onto the standard error body. Server errors are
// logged with the request logger before the message is (optionally) redacted.
func respondError(c echo.Context, err error, redact bool) error {
	httpErr := apperrors.MapErrorToHTTP(err, redact)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.FromEcho(c).Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
