package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPayment, error) {
	query := `
		SELECT id, loan_id, date, premium, interest, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY date DESC
	`

	payments := []*domain.LoanPayment{}
	if err := r.db.SelectContext(ctx, &payments, query, loanID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) SumInterestByLoan(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(interest), 0)
		FROM loan_payments
		WHERE loan_id = $1
	`

	var sum decimal.Decimal
	if err := r.db.GetContext(ctx, &sum, query, loanID); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}

func (r *paymentRepository) GetLatest(ctx context.Context, loanID uuid.UUID) (*domain.LoanPayment, error) {
	query := `
		SELECT id, loan_id, date, premium, interest, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY date DESC
		LIMIT 1
	`

	var payment domain.LoanPayment
	err := r.db.GetContext(ctx, &payment, query, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}
