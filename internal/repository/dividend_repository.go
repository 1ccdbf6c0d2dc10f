package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type dividendRepository struct {
	db *sqlx.DB
}

func NewDividendRepository(db *sqlx.DB) DividendRepository {
	return &dividendRepository{db: db}
}

func (r *dividendRepository) ExistsForPeriod(ctx context.Context, period string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM dividends WHERE period = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, period); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *dividendRepository) Settle(ctx context.Context, dividends []*domain.Dividend, payments []*domain.LoanPayment) error {
	dividendInsert := `
		INSERT INTO dividends (id, member_id, date, period, share_amount, annual_interest, attending_bonus, deductibles, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	paymentInsert := `
		INSERT INTO loan_payments (id, loan_id, date, premium, interest, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, dividend := range dividends {
		_, err = tx.ExecContext(ctx, dividendInsert,
			dividend.ID,
			dividend.MemberID,
			dividend.Date,
			dividend.Period,
			dividend.ShareAmount,
			dividend.AnnualInterest,
			dividend.AttendingBonus,
			dividend.Deductibles,
			dividend.Total,
			dividend.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	for _, payment := range payments {
		_, err = tx.ExecContext(ctx, paymentInsert,
			payment.ID,
			payment.LoanID,
			payment.Date,
			payment.Premium,
			payment.Interest,
			payment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *dividendRepository) List(ctx context.Context) ([]*domain.Dividend, error) {
	query := `
		SELECT id, member_id, date, period, share_amount, annual_interest, attending_bonus, deductibles, total, created_at
		FROM dividends
		ORDER BY date DESC
	`

	dividends := []*domain.Dividend{}
	if err := r.db.SelectContext(ctx, &dividends, query); err != nil {
		return nil, err
	}

	return dividends, nil
}
