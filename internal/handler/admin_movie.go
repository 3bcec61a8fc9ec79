package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

type movieReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Rating      string  `json:"rating"`
	PosterURL   string  `json:"poster_url"`
	ChildPrice  float64 `json:"child_price"`
	AdultPrice  float64 `json:"adult_price"`
	SeniorPrice float64 `json:"senior_price"`
}

func (r movieReq) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title is required"
	}
	if r.ChildPrice <= 0 || r.AdultPrice <= 0 || r.SeniorPrice <= 0 {
		return "all three tier prices must be positive"
	}
	return ""
}

func (r movieReq) toModel() model.Movie {
	return model.Movie{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Genre:       strings.TrimSpace(r.Genre),
		Rating:      strings.TrimSpace(r.Rating),
		PosterURL:   strings.TrimSpace(r.PosterURL),
		ChildPrice:  r.ChildPrice,
		AdultPrice:  r.AdultPrice,
		SeniorPrice: r.SeniorPrice,
	}
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := req.toModel()
	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/admin/movies/:id.  Price changes apply to
// future checkouts only; existing bookings keep the prices they were
// charged.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := req.toModel()
	m.ID = id
	if err := h.Movies.Update(ctx, &m); err != nil {
		return repoError(c, err, "update movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  Movies with scheduled
// shows cannot be removed.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete movie failed")
	}
	return c.NoContent(http.StatusNoContent)
}
