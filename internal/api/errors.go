package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/middleware"
)

// errorMapper writes core errors as HTTP responses.
type errorMapper struct {
	logger *zap.Logger
}

// respond maps err onto a status code and a generic message. Only input
// errors carry details; everything unexpected is logged and reported as 500.
func (m errorMapper) respond(c *gin.Context, op string, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		statusCode = http.StatusUnauthorized
		errResponse = ErrorResponse{Error: "Authentication required", Code: "unauthenticated"}
	case errors.Is(err, core.ErrForbidden):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: "You do not have permission to perform this action", Code: "forbidden"}
	case errors.Is(err, core.ErrNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: "Resource not found", Code: "not_found"}
	case errors.Is(err, core.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{
			Error:   "Invalid request",
			Code:    "invalid_input",
			Details: strings.TrimPrefix(err.Error(), core.ErrInvalidInput.Error()+": "),
		}
	case errors.Is(err, core.ErrUnavailable):
		m.logger.Warn("Dependency unavailable", m.fields(c, op, err)...)
		statusCode = http.StatusServiceUnavailable
		errResponse = ErrorResponse{Error: "Service temporarily unavailable, please retry", Code: "unavailable"}
	default:
		m.logger.Error("Internal Server Error", m.fields(c, op, err)...)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred.", Code: "internal"}
	}
	c.JSON(statusCode, errResponse)
}

func (m errorMapper) fields(c *gin.Context, op string, err error) []zap.Field {
	return []zap.Field{
		zap.String("op", op),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err),
	}
}

// badRequest reports a body or query that could not be decoded.
func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Code: "invalid_input", Details: details})
}
