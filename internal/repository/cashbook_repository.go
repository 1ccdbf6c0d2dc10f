package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type cashBookRepository struct {
	db *sqlx.DB
}

func NewCashBookRepository(db *sqlx.DB) CashBookRepository {
	return &cashBookRepository{db: db}
}

// Create computes the member's running total and inserts the entry inside
// one transaction. The stored total is a snapshot at creation time.
func (r *cashBookRepository) Create(ctx context.Context, entry *domain.CashBookEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM cash_book WHERE member_id = $1`
	if err = tx.GetContext(ctx, &entry.Total, sumQuery, entry.MemberID); err != nil {
		return err
	}
	entry.Total = entry.Total.Add(entry.Amount)

	insert := `
		INSERT INTO cash_book (id, member_id, date, description, amount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, insert,
		entry.ID,
		entry.MemberID,
		entry.Date,
		entry.Description,
		entry.Amount,
		entry.Total,
		entry.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *cashBookRepository) List(ctx context.Context, memberID *uuid.UUID) ([]*domain.CashBookEntry, error) {
	entries := []*domain.CashBookEntry{}

	if memberID != nil {
		query := `
			SELECT c.id, c.member_id, c.date, c.description, c.amount, c.total, c.created_at, m.name AS member_name
			FROM cash_book c
			JOIN members m ON m.id = c.member_id
			WHERE c.member_id = $1
			ORDER BY c.date DESC
		`
		if err := r.db.SelectContext(ctx, &entries, query, *memberID); err != nil {
			return nil, err
		}
		return entries, nil
	}

	query := `
		SELECT c.id, c.member_id, c.date, c.description, c.amount, c.total, c.created_at, m.name AS member_name
		FROM cash_book c
		JOIN members m ON m.id = c.member_id
		ORDER BY c.date DESC
	`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, err
	}

	return entries, nil
}
