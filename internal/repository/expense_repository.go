package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type expenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, date, category, description, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Date,
		expense.Category,
		expense.Description,
		expense.Amount,
		expense.CreatedAt,
		expense.UpdatedAt,
	)

	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	query := `
		SELECT id, date, category, description, amount, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`

	var expense domain.Expense
	if err := r.db.GetContext(ctx, &expense, query, id); err != nil {
		return nil, err
	}

	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, filter *domain.ExpenseFilter) ([]*domain.Expense, error) {
	query := `
		SELECT id, date, category, description, amount, created_at, updated_at
		FROM expenses
	`
	args := []interface{}{}
	where := ""

	appendCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter != nil {
		if filter.StartDate != nil {
			appendCond("date >= $%d", *filter.StartDate)
		}
		if filter.EndDate != nil {
			appendCond("date <= $%d", *filter.EndDate)
		}
		if filter.Category != "" {
			appendCond("category = $%d", filter.Category)
		}
	}

	expenses := []*domain.Expense{}
	if err := r.db.SelectContext(ctx, &expenses, query+where+" ORDER BY date DESC", args...); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET date = $2, category = $3, description = $4, amount = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Date,
		expense.Category,
		expense.Description,
		expense.Amount,
		time.Now(),
	)

	return err
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}
