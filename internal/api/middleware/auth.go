package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/api/metrics"
	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
	"github.com/fintrack/finance-api/internal/pkg/requestctx"
)

// Auth requires an "Authorization: Bearer <token>" header, verifies the token
// and attaches the caller's identity to the request context. Rejections are
// returned as domain errors for the HTTP error handler to render as 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			req := c.Request()
			c.SetRequest(req.WithContext(requestctx.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", domain.ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrMalformedToken
	}
	return parts[1], nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
