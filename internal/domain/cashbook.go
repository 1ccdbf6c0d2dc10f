package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashBookEntry is a member's savings ledger line. Total is the member's
// running sum at the time the entry was created, a snapshot rather than a
// live view.
type CashBookEntry struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	MemberID    uuid.UUID       `json:"member_id" db:"member_id"`
	Date        time.Time       `json:"date" db:"date"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Total       decimal.Decimal `json:"total" db:"total"`
	MemberName  string          `json:"member_name,omitempty" db:"member_name"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type CreateCashBookEntryRequest struct {
	MemberID    uuid.UUID       `json:"member_id" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}
