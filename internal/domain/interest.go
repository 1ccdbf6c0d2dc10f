package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InterestCalculation is a point-in-time snapshot of a loan's pending
// interest written by the daily accrual job. RunDate is the calendar day of
// the run; (loan_id, run_date) is unique so a same-day re-run is a no-op.
type InterestCalculation struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	LoanID          uuid.UUID       `json:"loan_id" db:"loan_id"`
	CalculationDate time.Time       `json:"calculation_date" db:"calculation_date"`
	RunDate         time.Time       `json:"run_date" db:"run_date"`
	DaysElapsed     int             `json:"days_elapsed" db:"days_elapsed"`
	InterestAmount  decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// AccrualResult describes one snapshot written by an accrual run.
type AccrualResult struct {
	LoanID          uuid.UUID       `json:"loan_id"`
	MemberID        uuid.UUID       `json:"member_id"`
	PendingInterest decimal.Decimal `json:"pending_interest"`
	DaysElapsed     int             `json:"days_elapsed"`
}

type AccrualResponse struct {
	Success      bool             `json:"success"`
	CalculatedAt time.Time        `json:"calculated_at"`
	Results      []*AccrualResult `json:"results"`
}
