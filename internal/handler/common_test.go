package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(7), 7, true},
		{"int", 7, 7, true},
		{"int64", int64(7), 7, true},
		{"float64 from json claims", float64(7), 7, true},
		{"numeric string", "7", 7, true},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	c, _ := newTestContext(t)
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := pathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c, _ := newTestContext(t)
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, err := pathID(c, "id")
		assert.Error(t, err, "value %q", bad)
	}
}

func TestRepoErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"movie miss", repository.ErrMovieNotFound, http.StatusNotFound},
		{"show miss", repository.ErrShowNotFound, http.StatusNotFound},
		{"booking miss", repository.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", repository.ErrForbidden, http.StatusForbidden},
		{"conflict", repository.ErrConflict, http.StatusConflict},
		{"seat taken", repository.ErrSeatTaken, http.StatusConflict},
		{"duplicate email", repository.ErrEmailExists, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, repoError(c, tc.err, "fallback"))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
