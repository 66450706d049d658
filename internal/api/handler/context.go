package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/pkg/requestctx"
)

// identity returns the caller attached by the Auth middleware. A missing
// identity means the route was mounted without the middleware; it is treated
// as an unauthenticated request.
func identity(c echo.Context) (domain.Identity, error) {
	id, ok := requestctx.IdentityFrom(c.Request().Context())
	if !ok {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}

// bindJSON decodes the request body. Decoding failures surface as a
// validation error on the "body" field.
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domain.NewValidationError(domain.FieldError{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}
