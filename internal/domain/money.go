// internal/domain/money.go
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errNotANumber = errors.New("not a number")

	// ErrAmountTooLarge is returned for amounts above MaxAmount.
	ErrAmountTooLarge = errors.New("amount too large")
)

// MaxAmount is the largest value a NUMERIC(14,2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

const (
	amountScale     = 2
	maxAmountDigits = 12
)

// NormalizeAmount rounds d to paise. The magnitude is checked from the
// coefficient length and exponent before rounding, since rescaling a value
// like 1e999999999 allocates a power of ten that size.
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > maxAmountDigits {
		return decimal.Zero, ErrAmountTooLarge
	}
	if magnitude < -amountScale {
		// Below 0.001 nothing survives rounding.
		return decimal.Zero, nil
	}
	r := d.Round(amountScale)
	if r.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return r, nil
}

// ParseAmount coerces a decoded JSON value (number or numeric string) into a decimal.
func ParseAmount(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Zero, errNotANumber
		}
		return decimal.NewFromString(s)
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case decimal.Decimal:
		return x, nil
	default:
		return decimal.Zero, errNotANumber
	}
}

// ParseAmountJSON decodes a raw JSON amount without going through float64
// and normalizes it with NormalizeAmount.
func ParseAmountJSON(raw json.RawMessage) (decimal.Decimal, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return decimal.Zero, errNotANumber
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return decimal.Zero, errNotANumber
	}
	d, err := ParseAmount(v)
	if err != nil {
		return decimal.Zero, err
	}
	return NormalizeAmount(d)
}

// ParseIncome decodes the raw income field of a profile update.
// An empty string or JSON null clears the income; anything else must be a
// non-negative number, stored rounded to paise.
func ParseIncome(raw json.RawMessage) (IncomeUpdate, error) {
	if len(raw) == 0 {
		return IncomeUpdate{}, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return IncomeUpdate{}, Invalid("income", "income must be a number")
	}
	if v == nil {
		return IncomeUpdate{Set: true}, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return IncomeUpdate{Set: true}, nil
	}
	d, err := ParseAmount(v)
	if err != nil {
		return IncomeUpdate{}, Invalid("income", "income must be a number")
	}
	if d.IsNegative() {
		return IncomeUpdate{}, Invalid("income", "income must not be negative")
	}
	if d, err = NormalizeAmount(d); err != nil {
		return IncomeUpdate{}, Invalid("income", "income must be at most %s", MaxAmount.StringFixed(amountScale))
	}
	return IncomeUpdate{Set: true, Value: &d}, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate accepts a calendar date or a full timestamp and keeps the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatRupees renders an amount the way the UI shows it.
func FormatRupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
