package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	end := func(start time.Time) time.Time { return start.Add(model.ShowDuration) }

	cases := []struct {
		name      string
		existing  time.Time
		candidate time.Time
		want      bool
	}{
		{"candidate starts inside existing", at(14, 0), at(16, 0), true},
		{"candidate ends inside existing", at(14, 0), at(12, 0), true},
		{"identical slots", at(14, 0), at(14, 0), true},
		{"candidate adjacent after", at(14, 0), at(17, 0), false},
		{"candidate adjacent before", at(14, 0), at(11, 0), false},
		{"well clear", at(10, 0), at(19, 0), false},
		{"one minute overlap", at(14, 0), at(16, 59), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := intervalsOverlap(tc.candidate, end(tc.candidate), tc.existing, end(tc.existing))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShowEndsAt(t *testing.T) {
	s := model.Show{StartsAt: at(14, 0)}
	assert.Equal(t, at(17, 0), s.EndsAt())
}
