package model

import "time"

// ShowDuration is the fixed length of every screening.  It exists only for
// scheduling conflict detection; nothing prevents patrons from leaving early.
const ShowDuration = 3 * time.Hour

// Show represents a scheduled screening of a movie in a particular room.
// There is no stored end time; a show occupies [StartsAt, StartsAt+ShowDuration).
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – the movie being screened.
//  RoomID    – the room the screening occupies.
//  StartsAt  – when the screening begins (UTC).
//  CreatedAt – creation timestamp.
type Show struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	RoomID    uint64    `json:"room_id"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedAt time.Time `json:"created_at"`
}

// EndsAt returns the exclusive end of the screening slot.
func (s Show) EndsAt() time.Time {
	return s.StartsAt.Add(ShowDuration)
}
