package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita-jha/cinema-booking-service-sub000/internal/model"
)

var testMovie = model.Movie{ChildPrice: 10, AdultPrice: 20, SeniorPrice: 12}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierChild, TierFor(0))
	assert.Equal(t, TierChild, TierFor(12))
	assert.Equal(t, TierAdult, TierFor(13))
	assert.Equal(t, TierAdult, TierFor(59))
	assert.Equal(t, TierSenior, TierFor(60))
	assert.Equal(t, TierSenior, TierFor(99))
}

func TestCompute_NoPromotion(t *testing.T) {
	entries := []Entry{
		{SeatNumber: 1, Age: 10},
		{SeatNumber: 2, Age: 30},
		{SeatNumber: 3, Age: 70},
	}
	q := Compute(testMovie, entries, nil)

	require.Len(t, q.Lines, 3)
	assert.Equal(t, TierChild, q.Lines[0].Tier)
	assert.Equal(t, TierAdult, q.Lines[1].Tier)
	assert.Equal(t, TierSenior, q.Lines[2].Tier)

	assert.InDelta(t, 42.0, q.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, q.Discount, 1e-9)
	assert.InDelta(t, 2.94, q.Tax, 1e-9)
	assert.InDelta(t, 44.94, q.Total, 1e-9)
}

func TestCompute_TenPercentPromotion(t *testing.T) {
	entries := []Entry{
		{SeatNumber: 1, Age: 10},
		{SeatNumber: 2, Age: 30},
		{SeatNumber: 3, Age: 70},
	}
	promo := &model.Promotion{Code: "SAVE10", Percent: 10}
	q := Compute(testMovie, entries, promo)

	// Tax is charged on the discounted subtotal, never the raw one.
	assert.InDelta(t, 42.0, q.Subtotal, 1e-9)
	assert.InDelta(t, 4.20, q.Discount, 1e-9)
	assert.InDelta(t, 37.80, q.Subtotal-q.Discount, 1e-9)
	assert.InDelta(t, 2.646, q.Tax, 1e-9)
	assert.InDelta(t, 40.446, q.Total, 1e-9)
}

func TestCompute_ReapplyReplacesDiscount(t *testing.T) {
	entries := []Entry{{SeatNumber: 1, Age: 30}, {SeatNumber: 2, Age: 30}}
	first := Compute(testMovie, entries, &model.Promotion{Code: "A", Percent: 50})
	second := Compute(testMovie, entries, &model.Promotion{Code: "B", Percent: 10})
	fresh := Compute(testMovie, entries, &model.Promotion{Code: "B", Percent: 10})

	// Applying B after A must equal applying B alone.
	assert.Equal(t, fresh, second)
	assert.InDelta(t, 20.0, first.Discount, 1e-9)
	assert.InDelta(t, 4.0, second.Discount, 1e-9)
}

func TestCompute_EmptyOrder(t *testing.T) {
	q := Compute(testMovie, nil, nil)
	assert.Zero(t, q.Subtotal)
	assert.Zero(t, q.Tax)
	assert.Zero(t, q.Total)
	assert.Empty(t, q.Lines)
}

func TestPromotionWindow(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	p := model.Promotion{Code: "WINTER", Percent: 15, StartsOn: day("2026-01-10"), EndsOn: day("2026-01-20")}

	assert.False(t, p.ValidOn(day("2026-01-09")))
	assert.True(t, p.ValidOn(day("2026-01-10")), "start day is inclusive")
	assert.True(t, p.ValidOn(day("2026-01-15")))
	assert.True(t, p.ValidOn(day("2026-01-20")), "end day is inclusive")
	assert.False(t, p.ValidOn(day("2026-01-21")))

	// Any wall-clock time on the last day still counts.
	assert.True(t, p.ValidOn(day("2026-01-20").Add(23*time.Hour+59*time.Minute)))
}
