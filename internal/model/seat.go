package model

import "time"

// Seat is one reservable place in a show's inventory.  All seats for a show
// are created together when the show is scheduled and transition to reserved
// at most once, at checkout.  A reserved seat always carries the reserving
// user and the age supplied for pricing.
//
// Fields:
//  ID         – primary key identifier.
//  ShowID     – the show this seat belongs to.
//  SeatNumber – position within the room, 1..capacity.
//  IsReserved – whether the seat has been taken.
//  UserID     – reserving user (nil while free).
//  Age        – age given at reservation time (nil while free).
//  ReservedAt – when the reservation happened (nil while free).
type Seat struct {
	ID         uint64     `json:"id"`
	ShowID     uint64     `json:"show_id"`
	SeatNumber uint32     `json:"seat_number"`
	IsReserved bool       `json:"is_reserved"`
	UserID     *uint64    `json:"user_id,omitempty"`
	Age        *uint32    `json:"age,omitempty"`
	ReservedAt *time.Time `json:"reserved_at,omitempty"`
}
