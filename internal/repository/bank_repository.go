package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

type bankRepository struct {
	db *sqlx.DB
}

func NewBankRepository(db *sqlx.DB) BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	query := `
		INSERT INTO banks (id, name, account_number, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		bank.ID,
		bank.Name,
		bank.AccountNumber,
		bank.Balance,
		bank.CreatedAt,
	)

	return err
}

func (r *bankRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	query := `
		SELECT id, name, account_number, balance, created_at
		FROM banks
		WHERE id = $1
	`

	var bank domain.Bank
	if err := r.db.GetContext(ctx, &bank, query, id); err != nil {
		return nil, err
	}

	return &bank, nil
}

func (r *bankRepository) List(ctx context.Context) ([]*domain.Bank, error) {
	query := `
		SELECT id, name, account_number, balance, created_at
		FROM banks
		ORDER BY name
	`

	banks := []*domain.Bank{}
	if err := r.db.SelectContext(ctx, &banks, query); err != nil {
		return nil, err
	}

	depositQuery := `
		SELECT id, bank_id, amount, interest_rate, start_date, maturity_date, created_at
		FROM fixed_deposits
		WHERE bank_id = $1
		ORDER BY start_date
	`
	for _, bank := range banks {
		deposits := []*domain.FixedDeposit{}
		if err := r.db.SelectContext(ctx, &deposits, depositQuery, bank.ID); err != nil {
			return nil, err
		}
		bank.FixedDeposits = deposits
	}

	return banks, nil
}

func (r *bankRepository) CreateFixedDeposit(ctx context.Context, deposit *domain.FixedDeposit) error {
	query := `
		INSERT INTO fixed_deposits (id, bank_id, amount, interest_rate, start_date, maturity_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		deposit.ID,
		deposit.BankID,
		deposit.Amount,
		deposit.InterestRate,
		deposit.StartDate,
		deposit.MaturityDate,
		deposit.CreatedAt,
	)

	return err
}
