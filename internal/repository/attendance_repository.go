package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) error {
	query := `
		INSERT INTO attendance (id, member_id, date, bonus, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		attendance.ID,
		attendance.MemberID,
		attendance.Date,
		attendance.Bonus,
		attendance.CreatedAt,
	)

	return err
}

func (r *attendanceRepository) SumBonusSince(ctx context.Context, memberID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(bonus), 0)
		FROM attendance
		WHERE member_id = $1 AND date >= $2
	`

	var sum decimal.Decimal
	if err := r.db.GetContext(ctx, &sum, query, memberID, since); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
