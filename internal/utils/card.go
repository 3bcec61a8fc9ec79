package utils

// card.go validates the payment form at checkout.  No card data is ever
// stored or forwarded; validation happens before any storage call and a
// failure is reported per field.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CardForm is the payment form submitted at checkout.
type CardForm struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

// Validate checks each field of the card form against the current time and
// returns a per-field error message, or nil when everything is acceptable.
func (f CardForm) Validate(now time.Time) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Holder) == "" {
		errs["holder"] = "cardholder name is required"
	}
	if !ValidCardNumber(f.Number) {
		errs["number"] = "card number is invalid"
	}
	if !validExpiry(f.Expiry, now) {
		errs["expiry"] = "expiry must be MM/YY and not in the past"
	}
	if n := len(strings.TrimSpace(f.CVV)); n < 3 || n > 4 || !digitsOnly(f.CVV) {
		errs["cvv"] = "cvv must be 3 or 4 digits"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidCardNumber reports whether the number passes the Luhn checksum after
// stripping spaces and dashes.  Lengths outside 12..19 digits fail outright.
func ValidCardNumber(number string) bool {
	s := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(s) < 12 || len(s) > 19 || !digitsOnly(s) {
		return false
	}
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func validExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	if len(parts[1]) != 2 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	year += 2000
	// A card is valid through the last day of its expiry month.
	endOfMonth, err := time.Parse("2006-01", fmt.Sprintf("%04d-%02d", year, month))
	if err != nil {
		return false
	}
	return !now.UTC().After(endOfMonth.AddDate(0, 1, 0).Add(-time.Second))
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
