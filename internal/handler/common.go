package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// getUserID extracts the authenticated user's id set by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the JWT middleware stored the ADMIN role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// pathID parses the :name path parameter as a positive integer id.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// repoError maps a repository error to the HTTP response the API promises:
// lookup misses become 404, ownership violations 403 and state conflicts
// 409.  Anything unrecognized becomes a generic 500 with fallback as the
// message.
func repoError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrShowNotFound),
		errors.Is(err, repository.ErrPromotionNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrSeatTaken),
		errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}
