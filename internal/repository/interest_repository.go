package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, calc *domain.InterestCalculation) (bool, error) {
	query := `
		INSERT INTO interest_calculations (id, loan_id, calculation_date, run_date, days_elapsed, interest_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (loan_id, run_date) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		calc.ID,
		calc.LoanID,
		calc.CalculationDate,
		calc.RunDate,
		calc.DaysElapsed,
		calc.InterestAmount,
		calc.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *interestRepository) GetLatestByLoan(ctx context.Context, loanID uuid.UUID) (*domain.InterestCalculation, error) {
	query := `
		SELECT id, loan_id, calculation_date, run_date, days_elapsed, interest_amount, created_at
		FROM interest_calculations
		WHERE loan_id = $1
		ORDER BY calculation_date DESC
		LIMIT 1
	`

	var calc domain.InterestCalculation
	err := r.db.GetContext(ctx, &calc, query, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &calc, nil
}
