package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

// CreateRoom handles POST /v1/admin/rooms.  Capacity is the number of seats
// every show in the room will get; omitting it uses the default.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Capacity uint32 `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room := model.Room{Name: req.Name, Capacity: req.Capacity}
	if err := h.Rooms.Create(ctx, &room); err != nil {
		return repoError(c, err, "create room failed")
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /v1/admin/rooms.
func (h *AdminHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// RenameRoom handles PATCH /v1/admin/rooms/:id.  Only the name can change;
// capacity is fixed at creation because existing shows already carry seat
// inventories sized from it.
func (h *AdminHandler) RenameRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Rename(ctx, id, req.Name); err != nil {
		return repoError(c, err, "rename room failed")
	}
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load room failed")
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.  Rooms with scheduled
// shows cannot be removed.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete room failed")
	}
	return c.NoContent(http.StatusNoContent)
}
