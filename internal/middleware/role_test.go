package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role any, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	t.Run("allowed role passes", func(t *testing.T) {
		rec := runWithRole(t, "ADMIN", "ADMIN")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("any of several roles passes", func(t *testing.T) {
		rec := runWithRole(t, "CUSTOMER", "CUSTOMER", "ADMIN")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("disallowed role is rejected", func(t *testing.T) {
		rec := runWithRole(t, "CUSTOMER", "ADMIN")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("missing role is rejected", func(t *testing.T) {
		rec := runWithRole(t, nil, "ADMIN")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("non-string role is rejected", func(t *testing.T) {
		rec := runWithRole(t, 42, "ADMIN")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
