package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	// Create creates a new member
	Create(ctx context.Context, member *domain.Member) error

	// GetByID retrieves a member by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)

	// List retrieves all members ordered by name
	List(ctx context.Context) ([]*domain.Member, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// List retrieves loans, optionally filtered by member
	List(ctx context.Context, memberID *uuid.UUID) ([]*domain.Loan, error)

	// ListActive retrieves all loans with status ACTIVE
	ListActive(ctx context.Context) ([]*domain.Loan, error)

	// ListActiveByMember retrieves a member's ACTIVE loans
	ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]*domain.Loan, error)

	// RecordPayment inserts the payment and applies the balance decrement
	// and status transition in a single transaction, returning the loan as
	// it stands after the payment.
	RecordPayment(ctx context.Context, payment *domain.LoanPayment) (*domain.Loan, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// ListByLoan retrieves all payments for a loan, most recent first
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPayment, error)

	// SumInterestByLoan sums the interest field across all payments for a loan
	SumInterestByLoan(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)

	// GetLatest gets the most recent payment for a loan, nil if none exists
	GetLatest(ctx context.Context, loanID uuid.UUID) (*domain.LoanPayment, error)
}

// InterestRepository defines the interface for interest snapshot operations
type InterestRepository interface {
	// Create inserts an accrual snapshot. Returns false without error when a
	// snapshot for the same loan and run date already exists.
	Create(ctx context.Context, calc *domain.InterestCalculation) (bool, error)

	// GetLatestByLoan gets the most recent snapshot for a loan, nil if none
	GetLatestByLoan(ctx context.Context, loanID uuid.UUID) (*domain.InterestCalculation, error)
}

// DividendRepository defines the interface for dividend settlement
type DividendRepository interface {
	// ExistsForPeriod reports whether any dividend carries the period tag
	ExistsForPeriod(ctx context.Context, period string) (bool, error)

	// Settle inserts all dividend rows and compensating interest payments in
	// a single transaction; any failure rolls the whole run back.
	Settle(ctx context.Context, dividends []*domain.Dividend, payments []*domain.LoanPayment) error

	// List retrieves all dividends, most recent first
	List(ctx context.Context) ([]*domain.Dividend, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	// Create creates a notification row
	Create(ctx context.Context, notification *domain.Notification) error

	// UpdateStatus records the SMS attempt outcome exactly once
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time) error

	// List retrieves all notifications, most recent first
	List(ctx context.Context) ([]*domain.Notification, error)
}

// CashBookRepository defines the interface for cash book entries
type CashBookRepository interface {
	// Create inserts the entry with the member's running total computed
	// inside the same transaction
	Create(ctx context.Context, entry *domain.CashBookEntry) error

	// List retrieves entries, optionally filtered by member, most recent first
	List(ctx context.Context, memberID *uuid.UUID) ([]*domain.CashBookEntry, error)
}

// BankRepository defines the interface for bank and fixed deposit records
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error)

	// List retrieves all banks with their fixed deposits
	List(ctx context.Context) ([]*domain.Bank, error)

	CreateFixedDeposit(ctx context.Context, deposit *domain.FixedDeposit) error
}

// ExpenseRepository defines the interface for expense records
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, filter *domain.ExpenseFilter) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceRepository defines the interface for attendance records
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *domain.Attendance) error

	// SumBonusSince sums a member's attendance bonuses on or after the cutoff
	SumBonusSince(ctx context.Context, memberID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

// LoanCache is a read-through cache for loan lookups.
type LoanCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
