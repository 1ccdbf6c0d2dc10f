package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a cooperative member
type Member struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	ContactNumber string    `json:"contact_number" db:"contact_number"`
	Email         string    `json:"email" db:"email"`
	JoinedAt      time.Time `json:"joined_at" db:"joined_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateMemberRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"omitempty,min=10,max=12"`
	Email         string `json:"email" validate:"omitempty,email"`
}
