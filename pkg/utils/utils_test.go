package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccruedInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		days      int
		expected  decimal.Decimal
	}{
		{
			name:      "member loan after 100 days",
			principal: decimal.NewFromInt(100000),
			rate:      decimal.NewFromFloat(0.09),
			days:      100,
			expected:  decimal.NewFromInt(900000).Div(decimal.NewFromInt(365)), // 2465.75...
		},
		{
			name:      "special loan after one year",
			principal: decimal.NewFromInt(50000),
			rate:      decimal.NewFromFloat(0.12),
			days:      365,
			expected:  decimal.NewFromInt(6000),
		},
		{
			name:      "zero days",
			principal: decimal.NewFromInt(100000),
			rate:      decimal.NewFromFloat(0.09),
			days:      0,
			expected:  decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AccruedInterest(tt.principal, tt.rate, tt.days)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestPendingInterest(t *testing.T) {
	principal := decimal.NewFromInt(100000)
	rate := decimal.NewFromFloat(0.09)

	pending := PendingInterest(principal, rate, 365, decimal.NewFromInt(4000))
	assert.True(t, pending.Equal(decimal.NewFromInt(5000)),
		"Expected 5000, got %v", pending)

	// Overpaid interest goes negative; callers clamp where needed.
	pending = PendingInterest(principal, rate, 365, decimal.NewFromInt(10000))
	assert.True(t, pending.IsNegative())
}

func TestDaysElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"same instant", start, 0},
		{"100 days later", start.AddDate(0, 0, 100), 100},
		{"partial day floors", start.Add(36 * time.Hour), 1},
		{"before start clamps to zero", start.AddDate(0, 0, -5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysElapsed(start, tt.now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DaysBetween(base.AddDate(0, 0, 30), base))
	assert.Equal(t, 30, DaysBetween(base, base.AddDate(0, 0, 30)))
	assert.Equal(t, 0, DaysBetween(base, base))
	// 29 days 13 hours rounds up to 30
	assert.Equal(t, 30, DaysBetween(base.Add(29*24*time.Hour+13*time.Hour), base))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 6, 1, 17, 42, 3, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
