package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// AccruedInterest computes simple daily interest on the 365-day-year
// convention: principal * annualRate * days / 365. No compounding, no
// leap-year adjustment.
func AccruedInterest(principal, annualRate decimal.Decimal, days int) decimal.Decimal {
	return principal.Mul(annualRate).Mul(decimal.NewFromInt(int64(days))).Div(daysPerYear)
}

// PendingInterest is the canonical unpaid-interest figure: interest accrued
// since the loan start minus interest paid over the lifetime of the loan.
// Both the accrual job and the dividend deductibles use this.
func PendingInterest(principal, annualRate decimal.Decimal, days int, paidInterest decimal.Decimal) decimal.Decimal {
	return AccruedInterest(principal, annualRate, days).Sub(paidInterest)
}

// DaysElapsed returns the whole days between start and now, floored.
// Returns 0 if now precedes start.
func DaysElapsed(start, now time.Time) int {
	days := int(now.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysBetween returns the rounded absolute number of days between two dates.
func DaysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int((diff + 12*time.Hour) / (24 * time.Hour))
}

// DateOnly truncates t to midnight UTC. Used as the accrual run key so two
// runs on the same calendar day collide on the uniqueness constraint.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
