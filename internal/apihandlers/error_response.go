package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contentai/internal/models"
)

// APIError defines standard error response
// Example: { "error": { "code": "bad_request", "message": "Invalid ID" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func Unauthorized(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusUnauthorized, "auth_error", msg)
}

func TooManyRequests(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusTooManyRequests, "rate_limited", msg)
}

func ServiceUnavailable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusServiceUnavailable, "service_unavailable", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

// RespondError maps a pipeline error onto the HTTP error taxonomy.
// Unrecognized errors become opaque 500s; the detail stays in the log.
func RespondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnsupportedContentType):
		BadRequest(ctx, err.Error())
	case errors.Is(err, models.ErrProviderAuth):
		Unauthorized(ctx, err.Error())
	case errors.Is(err, models.ErrRateLimited), errors.Is(err, models.ErrQuotaExceeded):
		TooManyRequests(ctx, err.Error())
	case errors.Is(err, models.ErrProviderUnavailable):
		ServiceUnavailable(ctx, err.Error())
	default:
		Internal(ctx, "Content generation failed")
	}
}
