package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dividend records one member's cut of a quarterly profit distribution.
// Period is the distribution date tag; (member_id, period) is unique so the
// same period cannot be settled twice.
type Dividend struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	MemberID       uuid.UUID       `json:"member_id" db:"member_id"`
	Date           time.Time       `json:"date" db:"date"`
	Period         string          `json:"period" db:"period"`
	ShareAmount    decimal.Decimal `json:"share_amount" db:"share_amount"`
	AnnualInterest decimal.Decimal `json:"annual_interest" db:"annual_interest"`
	AttendingBonus decimal.Decimal `json:"attending_bonus" db:"attending_bonus"`
	Deductibles    decimal.Decimal `json:"deductibles" db:"deductibles"`
	Total          decimal.Decimal `json:"total" db:"total"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

type SettleDividendsRequest struct {
	TotalProfit decimal.Decimal `json:"total_profit" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
}

type SettleDividendsResponse struct {
	Success   bool        `json:"success"`
	Period    string      `json:"period"`
	Dividends []*Dividend `json:"dividends"`
}
