package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	NotificationTypeInterestDue         = "INTEREST_DUE"
	NotificationTypePaymentReminder     = "PAYMENT_REMINDER"
	NotificationTypeDividendDistributed = "DIVIDEND_DISTRIBUTED"
)

const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusFailed  = "FAILED"
)

// Notification is created PENDING before the SMS attempt and updated
// exactly once to SENT or FAILED afterwards.
type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	MemberID  uuid.UUID  `json:"member_id" db:"member_id"`
	LoanID    *uuid.UUID `json:"loan_id,omitempty" db:"loan_id"`
	Type      string     `json:"type" db:"type"`
	Message   string     `json:"message" db:"message"`
	Status    string     `json:"status" db:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// OverdueDetail itemizes one overdue loan picked up by the dispatcher.
type OverdueDetail struct {
	MemberID         uuid.UUID       `json:"member_id"`
	MemberName       string          `json:"member_name"`
	LoanID           uuid.UUID       `json:"loan_id"`
	PendingInterest  decimal.Decimal `json:"pending_interest"`
	DaysSincePayment int             `json:"days_since_payment"`
}

type OverdueResponse struct {
	Success           bool             `json:"success"`
	NotificationsSent int              `json:"notifications_sent"`
	Details           []*OverdueDetail `json:"details"`
}
