package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// schema is applied at startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		contact_number TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		joined_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id UUID PRIMARY KEY,
		member_id UUID NOT NULL REFERENCES members(id),
		type TEXT NOT NULL,
		principal NUMERIC(14,2) NOT NULL,
		interest_rate NUMERIC(6,4) NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		balance NUMERIC(14,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS loan_payments (
		id UUID PRIMARY KEY,
		loan_id UUID NOT NULL REFERENCES loans(id),
		date TIMESTAMPTZ NOT NULL,
		premium NUMERIC(14,2) NOT NULL DEFAULT 0,
		interest NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS interest_calculations (
		id UUID PRIMARY KEY,
		loan_id UUID NOT NULL REFERENCES loans(id),
		calculation_date TIMESTAMPTZ NOT NULL,
		run_date DATE NOT NULL,
		days_elapsed INT NOT NULL,
		interest_amount NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (loan_id, run_date)
	)`,
	`CREATE TABLE IF NOT EXISTS dividends (
		id UUID PRIMARY KEY,
		member_id UUID NOT NULL REFERENCES members(id),
		date TIMESTAMPTZ NOT NULL,
		period TEXT NOT NULL,
		share_amount NUMERIC(14,2) NOT NULL,
		annual_interest NUMERIC(14,2) NOT NULL,
		attending_bonus NUMERIC(14,2) NOT NULL,
		deductibles NUMERIC(14,2) NOT NULL,
		total NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (member_id, period)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		member_id UUID NOT NULL REFERENCES members(id),
		loan_id UUID REFERENCES loans(id),
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		sent_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cash_book (
		id UUID PRIMARY KEY,
		member_id UUID NOT NULL REFERENCES members(id),
		date TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		total NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS banks (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		account_number TEXT NOT NULL,
		balance NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS fixed_deposits (
		id UUID PRIMARY KEY,
		bank_id UUID NOT NULL REFERENCES banks(id),
		amount NUMERIC(14,2) NOT NULL,
		interest_rate NUMERIC(6,4) NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		maturity_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		date TIMESTAMPTZ NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID PRIMARY KEY,
		member_id UUID NOT NULL REFERENCES members(id),
		date TIMESTAMPTZ NOT NULL,
		bonus NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_member ON loans(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_loan ON loan_payments(loan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interest_loan ON interest_calculations(loan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cash_book_member ON cash_book(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_member ON attendance(member_id, date)`,
}

// Migrate applies the schema to the database.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
