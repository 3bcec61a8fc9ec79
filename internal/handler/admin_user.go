package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// SetUserActive handles PATCH /v1/admin/users/:id.  Deactivated accounts
// keep their history but are blocked from booking and cancelling until
// reactivated.  Admins cannot deactivate themselves.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active (bool) is required"})
	}
	if id == adminID && !*req.Active {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot deactivate your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, *req.Active); err != nil {
		return repoError(c, err, "update user failed")
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load user failed")
	}
	return c.JSON(http.StatusOK, u)
}
