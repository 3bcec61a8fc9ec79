// Package pricing derives order totals from ages, a movie's tier price
// schedule, an optional percentage promotion and the sales tax rate.  All
// functions are pure; amounts are dollars as float64.
package pricing

import "github.com/nikita-jha/cinema-booking-service-sub000/internal/model"

// TaxRate is the flat sales tax applied to every order.  It is charged on
// the subtotal after any promotion discount, never on the pre-discount
// amount.
const TaxRate = 0.07

// Age boundaries for the price tiers.  A viewer younger than childAge pays
// the child price; seniorAge and above pays the senior price; everyone else
// pays the adult price.  The senior boundary is a product decision pinned
// here so there is exactly one place to change it.
const (
	childAge  = 13
	seniorAge = 60
)

// Tier names a price category.
type Tier string

const (
	TierChild  Tier = "child"
	TierAdult  Tier = "adult"
	TierSenior Tier = "senior"
)

// TierFor classifies an age into a price tier.
func TierFor(age uint32) Tier {
	switch {
	case age < childAge:
		return TierChild
	case age >= seniorAge:
		return TierSenior
	default:
		return TierAdult
	}
}

// PriceFor returns the per-seat price for the given age under a movie's
// schedule.
func PriceFor(m model.Movie, age uint32) float64 {
	switch TierFor(age) {
	case TierChild:
		return m.ChildPrice
	case TierSenior:
		return m.SeniorPrice
	default:
		return m.AdultPrice
	}
}

// Quote is the full price breakdown for an order.  Discount is zero when no
// promotion applies; Tax is always computed from Subtotal-Discount.
type Quote struct {
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Line is the priced entry for a single seat.
type Line struct {
	SeatNumber uint32  `json:"seat_number"`
	Age        uint32  `json:"age"`
	Tier       Tier    `json:"tier"`
	Price      float64 `json:"price"`
}

// Entry is one (seat number, age) pair from a draft booking.
type Entry struct {
	SeatNumber uint32 `json:"seat_number"`
	Age        uint32 `json:"age"`
}

// Compute prices a draft booking.  promo may be nil; a non-nil promotion is
// assumed to have been validated by the caller.  Reapplying a different
// promotion to the same entries always yields the same result as applying it
// first, because the discount is recomputed from the raw subtotal rather
// than folded into it.
func Compute(m model.Movie, entries []Entry, promo *model.Promotion) Quote {
	q := Quote{Lines: make([]Line, 0, len(entries))}
	for _, e := range entries {
		price := PriceFor(m, e.Age)
		q.Lines = append(q.Lines, Line{
			SeatNumber: e.SeatNumber,
			Age:        e.Age,
			Tier:       TierFor(e.Age),
			Price:      price,
		})
		q.Subtotal += price
	}
	if promo != nil {
		q.Discount = q.Subtotal * promo.Percent / 100
	}
	q.Tax = (q.Subtotal - q.Discount) * TaxRate
	q.Total = q.Subtotal - q.Discount + q.Tax
	return q
}
