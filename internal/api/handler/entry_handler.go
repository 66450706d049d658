package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/api/metrics"
	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

type EntryHandler struct {
	entryService ports.EntryService
}

func NewEntryHandler(entryService ports.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Create records an income or expense for the caller.
//
// @Summary      Create an entry
// @Description  Send an Idempotency-Key header to make retries safe: a repeated key returns the original entry with 200.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Client-chosen retry key"
// @Param        body             body      createEntryRequest  true   "Entry"
// @Success      201              {object}  domain.Entry
// @Success      200              {object}  domain.Entry
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.NewValidationError(domain.FieldError{
			Field:   "date",
			Message: "date must be RFC 3339 or YYYY-MM-DD",
		})
	}

	res, err := h.entryService.Create(c.Request().Context(), owner, ports.CreateEntryInput{
		Kind:           req.Kind,
		Amount:         req.Amount,
		Category:       req.Category,
		Description:    req.Description,
		Date:           date,
		IdempotencyKey: c.Request().Header.Get(idempotencyHeader),
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, res.Entry)
	}
	metrics.EntriesCreatedTotal.WithLabelValues(string(res.Entry.Kind)).Inc()
	metrics.EntryAmount.WithLabelValues(string(res.Entry.Kind)).Observe(res.Entry.Amount)
	return c.JSON(http.StatusCreated, res.Entry)
}

// List returns the caller's entries, newest first.
//
// @Summary      List entries
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        kind  query     string  false  "Filter by kind"  Enums(income, expense)
// @Success      200   {object}  entryListResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}

	entries, err := h.entryService.List(c.Request().Context(), owner, c.QueryParam("kind"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryListResponse{Data: entries})
}

// Summary totals the caller's entries.
//
// @Summary      Balance summary
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Summary
// @Failure      401  {object}  errorResponse
// @Router       /entries/summary [get]
func (h *EntryHandler) Summary(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}

	sum, err := h.entryService.Summary(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// Delete removes one of the caller's entries.
//
// @Summary      Delete an entry
// @Tags         entries
// @Security     BearerAuth
// @Param        id   path  string  true  "Entry ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	owner, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.entryService.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
