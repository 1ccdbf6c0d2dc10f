package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attendance records one meeting attendance with its bonus. The dividend
// settlement sums bonuses over a trailing window.
type Attendance struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	MemberID  uuid.UUID       `json:"member_id" db:"member_id"`
	Date      time.Time       `json:"date" db:"date"`
	Bonus     decimal.Decimal `json:"bonus" db:"bonus"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreateAttendanceRequest struct {
	Date  time.Time       `json:"date" validate:"required"`
	Bonus decimal.Decimal `json:"bonus" validate:"required"`
}
