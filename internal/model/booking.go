package model

import "time"

// Booking records a user's completed checkout for a show.  It aggregates the
// seats purchased in a single request together with the price breakdown that
// was charged.  Bookings are only created after every seat in the request was
// successfully reserved.
//
// Fields:
//  ID        – primary key identifier.
//  Reference – external booking reference (uuid) shown to the customer.
//  UserID    – user who made the booking.
//  ShowID    – show being booked.
//  Status    – CONFIRMED or CANCELLED.
//  PromoCode – promotion code applied, if any.
//  Subtotal  – sum of tier prices before discount.
//  Discount  – amount subtracted by the promotion.
//  Tax       – tax charged on the discounted subtotal.
//  Total     – discounted subtotal plus tax.
//  Seats     – the (seat number, age, price) lines of the order.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        uint64        `json:"id"`
	Reference string        `json:"reference"`
	UserID    uint64        `json:"user_id"`
	ShowID    uint64        `json:"show_id"`
	Status    string        `json:"status"`
	PromoCode *string       `json:"promo_code,omitempty"`
	Subtotal  float64       `json:"subtotal"`
	Discount  float64       `json:"discount"`
	Tax       float64       `json:"tax"`
	Total     float64       `json:"total"`
	Seats     []BookingSeat `json:"seats"`
	CreatedAt time.Time     `json:"created_at"`
}

// Booking status values.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// BookingSeat is one purchased seat line within a booking.
type BookingSeat struct {
	SeatNumber uint32  `json:"seat_number"`
	Age        uint32  `json:"age"`
	Price      float64 `json:"price"`
}
