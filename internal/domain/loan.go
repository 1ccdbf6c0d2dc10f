package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive    = "ACTIVE"
	LoanStatusPaid      = "PAID"
	LoanStatusDefaulted = "DEFAULTED"
)

const (
	LoanTypeMember   = "MEMBER"
	LoanTypeSpecial  = "SPECIAL"
	LoanTypeBusiness = "BUSINESS"
)

// LoanTypeRates maps each loan type to its fixed annual interest rate.
var LoanTypeRates = map[string]decimal.Decimal{
	LoanTypeMember:   decimal.NewFromFloat(0.09),
	LoanTypeSpecial:  decimal.NewFromFloat(0.12),
	LoanTypeBusiness: decimal.NewFromFloat(0.12),
}

// Loan represents a loan entity. Balance only moves down, via premium
// payments; status flips to PAID exactly when the balance reaches zero.
type Loan struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MemberID     uuid.UUID       `json:"member_id" db:"member_id"`
	Type         string          `json:"type" db:"type"`
	Principal    decimal.Decimal `json:"principal" db:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	MemberID  uuid.UUID       `json:"member_id" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=MEMBER SPECIAL BUSINESS"`
	Principal decimal.Decimal `json:"principal" validate:"required"`
	StartDate time.Time       `json:"start_date" validate:"required"`
}

type LoanResponse struct {
	Loan     *Loan          `json:"loan"`
	Member   *Member        `json:"member,omitempty"`
	Payments []*LoanPayment `json:"payments,omitempty"`
}
