package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// CreatePromotion handles POST /v1/admin/promotions.  Both window dates are
// calendar days and both are inclusive; a single-day promotion uses the
// same date twice.
func (h *AdminHandler) CreatePromotion(c echo.Context) error {
	var req struct {
		Code     string  `json:"code"`
		Percent  float64 `json:"percent"`
		StartsOn string  `json:"starts_on"`
		EndsOn   string  `json:"ends_on"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}
	if req.Percent <= 0 || req.Percent > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "percent must be in (0, 100]"})
	}
	startsOn, err := time.Parse("2006-01-02", strings.TrimSpace(req.StartsOn))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_on, want YYYY-MM-DD"})
	}
	endsOn, err := time.Parse("2006-01-02", strings.TrimSpace(req.EndsOn))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_on, want YYYY-MM-DD"})
	}
	if endsOn.Before(startsOn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_on must not be before starts_on"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Promotion{Code: req.Code, Percent: req.Percent, StartsOn: startsOn, EndsOn: endsOn}
	if err := h.Promos.Create(ctx, &p); err != nil {
		return repoError(c, err, "create promotion failed")
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPromotions handles GET /v1/admin/promotions.
func (h *AdminHandler) ListPromotions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	promos, err := h.Promos.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list promotions failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"promotions": promos})
}

// DeletePromotion handles DELETE /v1/admin/promotions/:id.  Past bookings
// keep the discount they were charged; only future checkouts are affected.
func (h *AdminHandler) DeletePromotion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid promotion id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Promos.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete promotion failed")
	}
	return c.NoContent(http.StatusNoContent)
}
