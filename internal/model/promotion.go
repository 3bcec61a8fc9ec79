package model

import "time"

// Promotion is a percentage discount code with an inclusive calendar
// validity window.  There are no usage-count limits and at most one
// promotion applies per order.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique discount code entered by the customer.
//  Percent   – discount percentage in (0, 100].
//  StartsOn  – first calendar day the code is valid.
//  EndsOn    – last calendar day the code is valid.
//  CreatedAt – creation timestamp.
type Promotion struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	Percent   float64   `json:"percent"`
	StartsOn  time.Time `json:"starts_on"`
	EndsOn    time.Time `json:"ends_on"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidOn reports whether the promotion may be applied on the given day.
// Both window ends are inclusive and only the calendar date matters, so the
// comparison normalizes all three times to midnight UTC first.
func (p Promotion) ValidOn(t time.Time) bool {
	day := midnight(t)
	return !day.Before(midnight(p.StartsOn)) && !day.After(midnight(p.EndsOn))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
