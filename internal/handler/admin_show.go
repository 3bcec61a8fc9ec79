package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// CreateShow handles POST /v1/admin/shows.  Scheduling is checked against
// every other show in the room before anything is written: two shows
// conflict when their fixed-length slots overlap.  The check is advisory
// and runs outside the insert transaction, so two concurrent creates can
// both pass it; unlike seat reservation there is no uniqueness constraint
// backing it up.  On success the show and its full seat inventory are
// created in one transaction.
func (h *AdminHandler) CreateShow(c echo.Context) error {
	var req struct {
		MovieID  uint64 `json:"movie_id"`
		RoomID   uint64 `json:"room_id"`
		StartsAt string `json:"starts_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and room_id are required"})
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartsAt))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at, want RFC3339"})
	}
	startsAt = startsAt.UTC()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		return repoError(c, err, "load movie failed")
	}
	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return repoError(c, err, "load room failed")
	}

	conflict, err := h.Schedule.FindConflict(ctx, req.RoomID, startsAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "show time overlaps an existing show in this room",
			"conflict": conflict,
		})
	}

	tx, err := h.Shows.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	show := &model.Show{MovieID: req.MovieID, RoomID: req.RoomID, StartsAt: startsAt}
	if err := h.Shows.CreateTx(ctx, tx, show); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
	}
	if err := h.Seats.InitInventoryTx(ctx, tx, show.ID, room.Capacity); err != nil {
		return repoError(c, err, "create seats failed")
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, show)
}

// ListShowsByRoom handles GET /v1/admin/rooms/:id/shows?date=YYYY-MM-DD and
// returns the room's schedule for one day.
func (h *AdminHandler) ListShowsByRoom(c echo.Context) error {
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	day := time.Now().UTC()
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		day, err = time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return repoError(c, err, "load room failed")
	}
	shows, err := h.Shows.ListByRoomAndDate(ctx, roomID, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shows failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": roomID, "date": day.Format("2006-01-02"), "shows": shows})
}

// DeleteShow handles DELETE /v1/admin/shows/:id.  Shows with confirmed
// bookings cannot be removed.
func (h *AdminHandler) DeleteShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Shows.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete show failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListShowBookings handles GET /v1/admin/shows/:id/bookings, the back
// office view of every booking taken for a show.
func (h *AdminHandler) ListShowBookings(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Shows.GetByID(ctx, id); err != nil {
		return repoError(c, err, "load show failed")
	}
	bookings, err := h.Bookings.ListByShow(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"show_id": id, "bookings": bookings})
}
