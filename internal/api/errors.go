package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/shared/apperr"
)

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrUnauthenticated:
		return http.StatusUnauthorized
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalidArgument, apperr.ErrUnavailable:
		return http.StatusBadRequest
	case apperr.ErrConflict:
		return http.StatusConflict
	case apperr.ErrTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response.
// Internal faults are logged in full and surfaced without detail.
func WriteError(c *gin.Context, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Warn(op+" rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// WriteBindError responds 400 to a request body or parameter that failed validation.
func WriteBindError(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
}
