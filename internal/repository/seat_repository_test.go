package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatInsertStatement(t *testing.T) {
	t.Run("covers 1..total exactly once", func(t *testing.T) {
		query, args := seatInsertStatement(5, 100)

		assert.Equal(t, 100, strings.Count(query, "(?, ?)"))
		require.Len(t, args, 200)
		for i := 0; i < 100; i++ {
			assert.Equal(t, uint64(5), args[2*i], "show id at pair %d", i)
			assert.Equal(t, uint32(i+1), args[2*i+1], "seat number at pair %d", i)
		}
	})

	t.Run("single-seat room", func(t *testing.T) {
		query, args := seatInsertStatement(9, 1)
		assert.Equal(t, `INSERT INTO seats (show_id, seat_number) VALUES (?, ?)`, query)
		assert.Equal(t, []interface{}{uint64(9), uint32(1)}, args)
	})
}
