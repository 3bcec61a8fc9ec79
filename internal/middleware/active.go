package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// RequireActiveUser blocks transacting endpoints for deactivated accounts.
// A valid token is not enough to book or cancel: the account's is_active
// flag is read fresh on every request so an admin deactivation takes effect
// immediately, not at token expiry.
func RequireActiveUser(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := contextUserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if !u.IsActive {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account is deactivated"})
			}
			return next(c)
		}
	}
}

// contextUserID extracts the user id stored by JWTAuth.  JWT numeric claims
// round-trip as float64, so several representations are accepted.
func contextUserID(c echo.Context) (uint64, bool) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, true
	case int:
		return uint64(t), true
	case int64:
		return uint64(t), true
	case float64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
