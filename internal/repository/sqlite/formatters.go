package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatTimeForDB normalizes a time.Time to UTC RFC3339 for storage.
// Normalizing keeps lexicographic string comparison equivalent to
// chronological comparison in queries.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time, returning nil for NULL storage
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDecimalForDB stores a decimal as its exact string representation.
// Monetary values never travel through float columns.
func FormatDecimalForDB(d decimal.Decimal) string {
	return d.String()
}

// FormatDecimalPtrForDB formats a *decimal.Decimal, returning nil for NULL storage
func FormatDecimalPtrForDB(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return FormatDecimalForDB(*d)
}

// ParseDecimalFromDB parses a stored decimal string
func ParseDecimalFromDB(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
