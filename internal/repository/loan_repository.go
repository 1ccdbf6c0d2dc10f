package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, member_id, type, principal, interest_rate, start_date, balance, status, created_at, updated_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, member_id, type, principal, interest_rate, start_date, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.MemberID,
		loan.Type,
		loan.Principal,
		loan.InterestRate,
		loan.StartDate,
		loan.Balance,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, id)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, memberID *uuid.UUID) ([]*domain.Loan, error) {
	loans := []*domain.Loan{}

	if memberID != nil {
		query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 ORDER BY status, start_date DESC`
		if err := r.db.SelectContext(ctx, &loans, query, *memberID); err != nil {
			return nil, err
		}
		return loans, nil
	}

	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY status, start_date DESC`
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY start_date`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query, domain.LoanStatusActive); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE member_id = $1 AND status = $2 ORDER BY start_date`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query, memberID, domain.LoanStatusActive); err != nil {
		return nil, err
	}

	return loans, nil
}

// RecordPayment inserts the payment row and applies the balance decrement in
// one transaction. The decrement is evaluated server-side so two concurrent
// payments against the same loan cannot race on a stale read.
func (r *loanRepository) RecordPayment(ctx context.Context, payment *domain.LoanPayment) (*domain.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO loan_payments (id, loan_id, date, premium, interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, insert,
		payment.ID,
		payment.LoanID,
		payment.Date,
		payment.Premium,
		payment.Interest,
		payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var loan domain.Loan
	if payment.Premium.IsPositive() {
		update := `
			UPDATE loans
			SET balance = balance - $2,
			    status = CASE WHEN balance - $2 <= 0 THEN '` + domain.LoanStatusPaid + `' ELSE status END,
			    updated_at = $3
			WHERE id = $1
			RETURNING ` + loanColumns
		err = tx.GetContext(ctx, &loan, update, payment.LoanID, payment.Premium, time.Now())
	} else {
		err = tx.GetContext(ctx, &loan, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, payment.LoanID)
	}
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &loan, nil
}
