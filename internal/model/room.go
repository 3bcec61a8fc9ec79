package model

import "time"

// Room is an auditorium in which shows are scheduled.  Capacity is the
// number of seats created for every show held in the room; seat numbers
// run 1..Capacity.
type Room struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Capacity  uint32    `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}
