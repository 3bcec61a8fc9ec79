package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: the movie
// catalogue, scheduled shows, live seat maps and promotion validation.
type PublicHandler struct {
	Movies *repository.MovieRepo
	Rooms  *repository.RoomRepo
	Shows  *repository.ShowRepo
	Seats  *repository.SeatRepo
	Promos *repository.PromotionRepo
}

func NewPublicHandler(m *repository.MovieRepo, r *repository.RoomRepo, s *repository.ShowRepo,
	seats *repository.SeatRepo, p *repository.PromotionRepo) *PublicHandler {
	if m == nil || r == nil || s == nil || seats == nil || p == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Movies: m, Rooms: r, Shows: s, Seats: seats, Promos: p}
}

// ListMovies returns the full catalogue.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list movies failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// GetMovie returns one movie with its price schedule.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// ListShowsByMovie returns all scheduled shows for a movie.
func (h *PublicHandler) ListShowsByMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, id); err != nil {
		return repoError(c, err, "load movie failed")
	}
	shows, err := h.Shows.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shows failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

type showDetail struct {
	model.Show
	EndsAt time.Time    `json:"ends_at"`
	Movie  *model.Movie `json:"movie"`
	Room   *model.Room  `json:"room"`
}

// GetShow returns a show together with its movie and room, plus the derived
// end time of the fixed-length screening slot.
func (h *PublicHandler) GetShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	show, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load show failed")
	}
	movie, err := h.Movies.GetByID(ctx, show.MovieID)
	if err != nil {
		return repoError(c, err, "load movie failed")
	}
	room, err := h.Rooms.GetByID(ctx, show.RoomID)
	if err != nil {
		return repoError(c, err, "load room failed")
	}
	return c.JSON(http.StatusOK, showDetail{Show: *show, EndsAt: show.EndsAt(), Movie: movie, Room: room})
}

// GetShowSeats returns the seat map of one show ordered by seat number, so
// the seat-selection page can render availability directly.
func (h *PublicHandler) GetShowSeats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Shows.GetByID(ctx, id); err != nil {
		return repoError(c, err, "load show failed")
	}
	seats, err := h.Seats.ListByShow(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}
	free := 0
	for _, s := range seats {
		if !s.IsReserved {
			free++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"show_id": id, "free": free, "seats": seats})
}

// ValidatePromotion checks a promotion code against today's date without
// touching any booking.  Unknown codes and codes outside their window are
// both reported as invalid rather than an error, so the seat-selection page
// can show inline feedback.
func (h *PublicHandler) ValidatePromotion(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Promos.GetByCode(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"code": req.Code, "valid": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if !p.ValidOn(time.Now()) {
		return c.JSON(http.StatusOK, echo.Map{"code": p.Code, "valid": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"code": p.Code, "valid": true, "percent": p.Percent})
}
