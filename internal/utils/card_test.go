package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	assert.True(t, ValidCardNumber("4111111111111111"), "classic Visa test number")
	assert.True(t, ValidCardNumber("4111 1111 1111 1111"), "spaces are stripped")
	assert.True(t, ValidCardNumber("5500-0000-0000-0004"), "dashes are stripped")
	assert.False(t, ValidCardNumber("4111111111111112"), "bad Luhn checksum")
	assert.False(t, ValidCardNumber("411111"), "too short")
	assert.False(t, ValidCardNumber("41111111111111a1"), "non-digit")
	assert.False(t, ValidCardNumber(""))
}

func TestCardFormValidate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid form", func(t *testing.T) {
		f := CardForm{Holder: "Pat Doe", Number: "4111111111111111", Expiry: "12/27", CVV: "123"}
		assert.Nil(t, f.Validate(now))
	})

	t.Run("expiry month still current", func(t *testing.T) {
		f := CardForm{Holder: "Pat Doe", Number: "4111111111111111", Expiry: "09/26", CVV: "123"}
		assert.Nil(t, f.Validate(now), "card is valid through the end of its expiry month")
	})

	t.Run("expired card", func(t *testing.T) {
		f := CardForm{Holder: "Pat Doe", Number: "4111111111111111", Expiry: "08/26", CVV: "123"}
		errs := f.Validate(now)
		assert.Contains(t, errs, "expiry")
	})

	t.Run("every field bad", func(t *testing.T) {
		f := CardForm{Holder: " ", Number: "123", Expiry: "13/99", CVV: "12"}
		errs := f.Validate(now)
		assert.Len(t, errs, 4)
		assert.Contains(t, errs, "holder")
		assert.Contains(t, errs, "number")
		assert.Contains(t, errs, "expiry")
		assert.Contains(t, errs, "cvv")
	})

	t.Run("four digit cvv", func(t *testing.T) {
		f := CardForm{Holder: "Pat Doe", Number: "4111111111111111", Expiry: "12/27", CVV: "1234"}
		assert.Nil(t, f.Validate(now))
	})
}
