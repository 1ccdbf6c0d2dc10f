package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPayment records a payment against a loan. Premium reduces the
// principal balance; interest settles accrued interest. Rows are
// append-only, never mutated or deleted.
type LoanPayment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	LoanID    uuid.UUID       `json:"loan_id" db:"loan_id"`
	Date      time.Time       `json:"date" db:"date"`
	Premium   decimal.Decimal `json:"premium" db:"premium"`
	Interest  decimal.Decimal `json:"interest" db:"interest"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreatePaymentRequest struct {
	Date     time.Time       `json:"date" validate:"required"`
	Premium  decimal.Decimal `json:"premium"`
	Interest decimal.Decimal `json:"interest"`
}

type PaymentResponse struct {
	Payment *LoanPayment    `json:"payment"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}
