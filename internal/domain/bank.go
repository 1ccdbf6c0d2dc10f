package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bank is a plain ledger record for a cooperative bank account.
type Bank struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	FixedDeposits []*FixedDeposit `json:"fixed_deposits,omitempty" db:"-"`
}

// FixedDeposit belongs to a Bank.
type FixedDeposit struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	BankID       uuid.UUID       `json:"bank_id" db:"bank_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	MaturityDate time.Time       `json:"maturity_date" db:"maturity_date"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type CreateBankRequest struct {
	Name          string          `json:"name" validate:"required"`
	AccountNumber string          `json:"account_number" validate:"required"`
	Balance       decimal.Decimal `json:"balance"`
}

type CreateFixedDepositRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"required"`
	StartDate    time.Time       `json:"start_date" validate:"required"`
	MaturityDate time.Time       `json:"maturity_date" validate:"required"`
}
