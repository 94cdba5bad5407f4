package sqlite

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "Zone offsets are normalized to UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "Nanoseconds are truncated",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	when := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	assert.Equal(t, "2024-01-15T10:30:45Z", FormatTimePtrForDB(&when))
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "Valid RFC3339 time",
			input:    "2024-01-15T10:30:45Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "Valid RFC3339 time with offset",
			input:    "2024-06-15T14:30:00-05:00",
			expected: time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("", -5*3600)),
		},
		{
			name:        "Invalid time format",
			input:       "2024-01-15 10:30:45",
			expectError: true,
		},
		{
			name:        "Empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, result.IsZero())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	originalTime := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

	formatted := FormatTimeForDB(originalTime)
	parsed, err := ParseTimeFromDB(formatted)

	assert.NoError(t, err)
	assert.True(t, originalTime.Equal(parsed))
}

func TestDecimalFormatting(t *testing.T) {
	assert.Equal(t, "85.5", FormatDecimalForDB(decimal.NewFromFloat(85.5)))
	assert.Equal(t, "0", FormatDecimalForDB(decimal.Zero))

	assert.Nil(t, FormatDecimalPtrForDB(nil))
	d := decimal.NewFromInt(170)
	assert.Equal(t, "170", FormatDecimalPtrForDB(&d))

	parsed, err := ParseDecimalFromDB("85.5")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(decimal.NewFromFloat(85.5)))

	// legacy NULL-ish rows read as zero
	parsed, err = ParseDecimalFromDB("")
	require.NoError(t, err)
	assert.True(t, parsed.IsZero())

	_, err = ParseDecimalFromDB("not a number")
	assert.Error(t, err)
}
