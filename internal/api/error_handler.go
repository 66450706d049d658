package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fintrack/finance-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes and renders {"error", "code", "details"}. Unexpected errors
// are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{
			Error:   "invalid input",
			Code:    "ValidationFailed",
			Details: ve.Fields,
		}
	}

	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusBadRequest, errorResponse{Error: "invalid input", Code: "ValidationFailed"}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, errorResponse{Error: "a user with this email already exists", Code: "DuplicateEmail"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid email or password", Code: "InvalidCredentials"}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, errorResponse{Error: "token not provided", Code: "MissingToken"}
	case errors.Is(err, domain.ErrMalformedToken):
		return http.StatusUnauthorized, errorResponse{Error: "malformed authorization header", Code: "MalformedToken"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token", Code: "TokenInvalid"}
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, errorResponse{Error: "entry not found", Code: "EntryNotFound"}
	}

	// Echo's own errors (unknown route, wrong method, oversized body).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, errorResponse{
			Error: fmt.Sprintf("%v", he.Message),
			Code:  strings.ReplaceAll(http.StatusText(he.Code), " ", ""),
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "Internal"}
}
