package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/pricing"
)

func TestValidateEntries(t *testing.T) {
	t.Run("accepts a normal selection", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{
			{SeatNumber: 3, Age: 10},
			{SeatNumber: 7, Age: 70},
		}, 100)
		assert.NoError(t, err)
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		assert.Error(t, validateEntries(nil, 100))
	})

	t.Run("rejects seat zero", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{{SeatNumber: 0, Age: 30}}, 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("rejects seat beyond capacity", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{{SeatNumber: 101, Age: 30}}, 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("boundary seats are fine", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{
			{SeatNumber: 1, Age: 30},
			{SeatNumber: 100, Age: 30},
		}, 100)
		assert.NoError(t, err)
	})

	t.Run("rejects duplicate seats", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{
			{SeatNumber: 5, Age: 30},
			{SeatNumber: 5, Age: 12},
		}, 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects implausible age", func(t *testing.T) {
		err := validateEntries([]pricing.Entry{{SeatNumber: 2, Age: 200}}, 100)
		require.Error(t, err)
	})
}

func TestSeatsTakenError(t *testing.T) {
	err := &SeatsTakenError{Numbers: []uint32{3, 7}}
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "7")
}
