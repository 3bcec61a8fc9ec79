// Package repository defines error values that are reused across multiple
// repositories.  These sentinels let handlers distinguish failure scenarios
// without string matching: lookup misses map to 404 responses, ErrForbidden
// to 403, and the conflict errors to 409.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource that belongs to someone else.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as initializing seats for a show that already has
// them or deleting a show with bookings.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned by the conditional seat reservation when the
// seat's unreserved flag was no longer set at update time.  It is the
// enforced form of the advisory availability pre-check.
var ErrSeatTaken = errors.New("seat already reserved")

// Lookup misses, one per entity the API exposes.
var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrShowNotFound      = errors.New("show not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUserNotFound      = errors.New("user not found")
)

// ErrEmailExists is returned when registering with an email that is already
// taken.
var ErrEmailExists = errors.New("email already exists")
