// Package service holds the booking and scheduling workflows that span
// multiple repositories.
package service

import (
	"context"
	"time"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
	"github.com/nikita-jha/cinema-booking-service-sub000/internal/repository"
)

// ScheduleService decides whether a candidate show can be scheduled without
// colliding with an existing screening in the same room.
type ScheduleService struct {
	shows *repository.ShowRepo
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(shows *repository.ShowRepo) *ScheduleService {
	return &ScheduleService{shows: shows}
}

// FindConflict returns the existing show whose screening slot overlaps a
// candidate starting at startsAt in the given room, or nil when the slot is
// free.  Each show occupies [start, start+ShowDuration); two shows conflict
// iff candidateStart < existingEnd AND candidateEnd > existingStart, so
// back-to-back screenings sharing a boundary instant do not conflict.
func (s *ScheduleService) FindConflict(ctx context.Context, roomID uint64, startsAt time.Time) (*model.Show, error) {
	existing, err := s.shows.ListByRoomAndDate(ctx, roomID, startsAt)
	if err != nil {
		return nil, err
	}
	candEnd := startsAt.Add(model.ShowDuration)
	for i := range existing {
		if intervalsOverlap(startsAt, candEnd, existing[i].StartsAt, existing[i].EndsAt()) {
			return &existing[i], nil
		}
	}
	return nil, nil
}

// intervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd)
// intersect.
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
