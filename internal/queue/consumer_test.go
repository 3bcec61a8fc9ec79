package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderConfirmation(t *testing.T) {
	event := BookingConfirmedEvent{
		Reference:  "3f2e1c9a-0000-0000-0000-000000000000",
		MovieTitle: "The Long Goodbye",
		RoomName:   "Room 2",
		StartsAt:   "2026-03-14T14:00:00Z",
		Seats: []BookedSeat{
			{SeatNumber: 3, Age: 10, Price: 10},
			{SeatNumber: 7, Age: 70, Price: 12},
		},
		Subtotal: 22,
		Discount: 2.2,
		Tax:      1.386,
		Total:    21.186,
	}
	body := RenderConfirmation(event)

	assert.Contains(t, body, event.Reference)
	assert.Contains(t, body, "The Long Goodbye")
	assert.Contains(t, body, "seat 3 (age 10) $10.00")
	assert.Contains(t, body, "seat 7 (age 70) $12.00")
	assert.Contains(t, body, "Discount: -$2.20")
	assert.Contains(t, body, "Total: $21.19")
}

func TestRenderConfirmation_NoDiscountLineWhenZero(t *testing.T) {
	body := RenderConfirmation(BookingConfirmedEvent{Subtotal: 20, Tax: 1.4, Total: 21.4})
	assert.NotContains(t, body, "Discount")
}
