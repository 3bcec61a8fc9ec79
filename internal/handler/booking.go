package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/pricing"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/service"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/utils"
)

// BookingHandler serves the customer checkout flow and booking history.
type BookingHandler struct {
	Svc      *service.BookingService
	Bookings *repository.BookingRepo
}

func NewBookingHandler(svc *service.BookingService, bookings *repository.BookingRepo) *BookingHandler {
	if svc == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Bookings: bookings}
}

type seatEntry struct {
	SeatNumber uint32 `json:"seat_number"`
	Age        uint32 `json:"age"`
}

type quoteReq struct {
	Seats     []seatEntry `json:"seats"`
	PromoCode string      `json:"promo_code"`
}

type checkoutReq struct {
	Seats     []seatEntry    `json:"seats"`
	PromoCode string         `json:"promo_code"`
	Card      utils.CardForm `json:"card"`
}

func toEntries(seats []seatEntry) []pricing.Entry {
	entries := make([]pricing.Entry, 0, len(seats))
	for _, s := range seats {
		entries = append(entries, pricing.Entry{SeatNumber: s.SeatNumber, Age: s.Age})
	}
	return entries
}

// Quote prices a draft booking without reserving anything.  POST so the
// seat list travels in the body; nothing is written.
func (h *BookingHandler) Quote(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Quote(ctx, showID, toEntries(req.Seats), strings.TrimSpace(req.PromoCode))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create runs the checkout: the card form is validated first so no seat is
// reserved for a payment that could never be attempted, then the service
// reserves every seat and records the booking in one transaction.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := req.Card.Validate(time.Now()); len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid card", "fields": fields})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	booking, err := h.Svc.Checkout(ctx, uid, showID, toEntries(req.Seats), strings.TrimSpace(req.PromoCode))
	if err != nil {
		var taken *service.SeatsTakenError
		switch {
		case errors.As(err, &taken):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":       "seats no longer available",
				"unavailable": taken.Numbers,
			})
		case errors.Is(err, service.ErrPromotionInvalid),
			errors.Is(err, repository.ErrPromotionNotFound):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "promotion code is not valid"})
		}
		return quoteError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListMine returns the caller's booking history, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Get returns one booking.  Customers may only read their own; admins may
// read any.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load booking failed")
	}
	if b.UserID != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel releases a booking's seats and marks it cancelled.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Svc.Cancel(ctx, uid, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not cancellable"})
		}
		return repoError(c, err, "cancel failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// quoteError maps quote/checkout failures that are not seat or promotion
// conflicts: lookup misses from the repositories stay 404s and seat
// selection problems become 400s.
func quoteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrShowNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrRoomNotFound):
		return repoError(c, err, "load failed")
	case errors.Is(err, service.ErrInvalidSelection):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}
