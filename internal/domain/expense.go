package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a plain CRUD ledger record.
type Expense struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Date        time.Time       `json:"date" db:"date"`
	Category    string          `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type ExpenseRequest struct {
	Date        time.Time       `json:"date" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

// ExpenseFilter narrows expense listings by date range and category.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
}
