// Package queue contains the message payloads, publisher and consumer for
// the booking event stream carried over RabbitMQ.
package queue

// bookingQueueName is the durable queue both publisher and consumer declare.
const bookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries everything the notification consumer needs to render a
// confirmation email without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64       `json:"booking_id"`
	Reference   string       `json:"reference"`
	UserID      uint64       `json:"user_id"`
	Email       string       `json:"email"`
	MovieTitle  string       `json:"movie_title"`
	RoomName    string       `json:"room_name"`
	StartsAt    string       `json:"starts_at"`
	Seats       []BookedSeat `json:"seats"`
	Subtotal    float64      `json:"subtotal"`
	Discount    float64      `json:"discount"`
	Tax         float64      `json:"tax"`
	Total       float64      `json:"total"`
	ConfirmedAt string       `json:"confirmed_at"`
}

// BookedSeat is one purchased seat line inside an event.
type BookedSeat struct {
	SeatNumber uint32  `json:"seat_number"`
	Age        uint32  `json:"age"`
	Price      float64 `json:"price"`
}
