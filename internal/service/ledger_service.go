package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
)

const loanCacheTTL = time.Hour

// LedgerService handles the CRUD surface of the ledger: members, loans,
// payments, banks, expenses and the cash book.
type LedgerService struct {
	MemberRepo     repository.MemberRepository
	LoanRepo       repository.LoanRepository
	PaymentRepo    repository.PaymentRepository
	BankRepo       repository.BankRepository
	ExpenseRepo    repository.ExpenseRepository
	CashBook       repository.CashBookRepository
	AttendanceRepo repository.AttendanceRepository
	Cache          repository.LoanCache
	logger         *slog.Logger
}

func NewLedgerService(
	memberRepo repository.MemberRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	bankRepo repository.BankRepository,
	expenseRepo repository.ExpenseRepository,
	cashBook repository.CashBookRepository,
	attendanceRepo repository.AttendanceRepository,
	cache repository.LoanCache,
	logger *slog.Logger,
) *LedgerService {
	return &LedgerService{
		MemberRepo:     memberRepo,
		LoanRepo:       loanRepo,
		PaymentRepo:    paymentRepo,
		BankRepo:       bankRepo,
		ExpenseRepo:    expenseRepo,
		CashBook:       cashBook,
		AttendanceRepo: attendanceRepo,
		Cache:          cache,
		logger:         logger,
	}
}

// Members

func (s *LedgerService) CreateMember(ctx context.Context, request *domain.CreateMemberRequest) (*domain.Member, error) {
	now := time.Now()
	member := &domain.Member{
		ID:            uuid.New(),
		Name:          request.Name,
		ContactNumber: request.ContactNumber,
		Email:         request.Email,
		JoinedAt:      now,
		CreatedAt:     now,
	}

	if err := s.MemberRepo.Create(ctx, member); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return member, nil
}

func (s *LedgerService) GetMember(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	member, err := s.MemberRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapMemberNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return member, nil
}

func (s *LedgerService) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	members, err := s.MemberRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return members, nil
}

// RecordAttendance writes a meeting attendance with its bonus. The bonus
// feeds the next dividend settlement's attendance window.
func (s *LedgerService) RecordAttendance(ctx context.Context, memberID uuid.UUID, request *domain.CreateAttendanceRequest) (*domain.Attendance, error) {
	if _, err := s.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	attendance := &domain.Attendance{
		ID:        uuid.New(),
		MemberID:  memberID,
		Date:      request.Date,
		Bonus:     request.Bonus,
		CreatedAt: time.Now(),
	}

	if err := s.AttendanceRepo.Create(ctx, attendance); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return attendance, nil
}

// Loans

func (s *LedgerService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	rate, ok := domain.LoanTypeRates[request.Type]
	if !ok {
		return nil, apperrors.WrapValidation(apperrors.ErrInvalidLoanType)
	}

	if !request.Principal.IsPositive() {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "principal must be greater than zero", nil)
	}

	if _, err := s.GetMember(ctx, request.MemberID); err != nil {
		return nil, err
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:           uuid.New(),
		MemberID:     request.MemberID,
		Type:         request.Type,
		Principal:    request.Principal,
		InterestRate: rate,
		StartDate:    request.StartDate,
		Balance:      request.Principal,
		Status:       domain.LoanStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loan, nil
}

// GetLoan reads through the cache; a miss falls back to the database and
// repopulates the cache.
func (s *LedgerService) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	cacheKey := "loan:" + id.String()

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
			var loan domain.Loan
			if err := json.Unmarshal([]byte(cached), &loan); err == nil {
				return &loan, nil
			}
		}
	}

	loan, err := s.LoanRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapLoanNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	if s.Cache != nil {
		if encoded, err := json.Marshal(loan); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, string(encoded), loanCacheTTL); err != nil {
				s.logger.Warn("caching loan", "loan_id", id, "error", err)
			}
		}
	}

	return loan, nil
}

func (s *LedgerService) ListLoans(ctx context.Context, memberID *uuid.UUID) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.List(ctx, memberID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return loans, nil
}

// Payments

// RecordPayment validates the payment, applies it atomically with the loan
// balance update, and invalidates the cached loan.
func (s *LedgerService) RecordPayment(ctx context.Context, loanID uuid.UUID, request *domain.CreatePaymentRequest) (*domain.PaymentResponse, error) {
	if request.Premium.IsNegative() || request.Interest.IsNegative() {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "premium and interest must not be negative", nil)
	}

	if !request.Premium.IsPositive() && !request.Interest.IsPositive() {
		return nil, apperrors.WrapValidation(apperrors.ErrEmptyPayment)
	}

	if _, err := s.LoanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapLoanNotFound(loanID.String())
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	payment := &domain.LoanPayment{
		ID:        uuid.New(),
		LoanID:    loanID,
		Date:      request.Date,
		Premium:   request.Premium.Round(2),
		Interest:  request.Interest.Round(2),
		CreatedAt: time.Now(),
	}

	loan, err := s.LoanRepo.RecordPayment(ctx, payment)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, "loan:"+loanID.String()); err != nil {
			s.logger.Warn("invalidating loan cache", "loan_id", loanID, "error", err)
		}
	}

	return &domain.PaymentResponse{
		Payment: payment,
		Balance: loan.Balance,
		Status:  loan.Status,
	}, nil
}

func (s *LedgerService) ListPayments(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPayment, error) {
	if _, err := s.LoanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapLoanNotFound(loanID.String())
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	payments, err := s.PaymentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return payments, nil
}

// Banks

func (s *LedgerService) CreateBank(ctx context.Context, request *domain.CreateBankRequest) (*domain.Bank, error) {
	bank := &domain.Bank{
		ID:            uuid.New(),
		Name:          request.Name,
		AccountNumber: request.AccountNumber,
		Balance:       request.Balance,
		CreatedAt:     time.Now(),
	}

	if err := s.BankRepo.Create(ctx, bank); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return bank, nil
}

func (s *LedgerService) ListBanks(ctx context.Context) ([]*domain.Bank, error) {
	banks, err := s.BankRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return banks, nil
}

func (s *LedgerService) CreateFixedDeposit(ctx context.Context, bankID uuid.UUID, request *domain.CreateFixedDepositRequest) (*domain.FixedDeposit, error) {
	if _, err := s.BankRepo.GetByID(ctx, bankID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.WrapBankNotFound(bankID.String())
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	deposit := &domain.FixedDeposit{
		ID:           uuid.New(),
		BankID:       bankID,
		Amount:       request.Amount,
		InterestRate: request.InterestRate,
		StartDate:    request.StartDate,
		MaturityDate: request.MaturityDate,
		CreatedAt:    time.Now(),
	}

	if err := s.BankRepo.CreateFixedDeposit(ctx, deposit); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return deposit, nil
}

// Expenses

func (s *LedgerService) CreateExpense(ctx context.Context, request *domain.ExpenseRequest) (*domain.Expense, error) {
	now := time.Now()
	expense := &domain.Expense{
		ID:          uuid.New(),
		Date:        request.Date,
		Category:    request.Category,
		Description: request.Description,
		Amount:      request.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ExpenseRepo.Create(ctx, expense); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return expense, nil
}

func (s *LedgerService) GetExpense(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	expense, err := s.ExpenseRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapExpenseNotFound(id.String())
	}
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return expense, nil
}

func (s *LedgerService) ListExpenses(ctx context.Context, filter *domain.ExpenseFilter) ([]*domain.Expense, error) {
	expenses, err := s.ExpenseRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return expenses, nil
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id uuid.UUID, request *domain.ExpenseRequest) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Date = request.Date
	expense.Category = request.Category
	expense.Description = request.Description
	expense.Amount = request.Amount
	expense.UpdatedAt = time.Now()

	if err := s.ExpenseRepo.Update(ctx, expense); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return expense, nil
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}

	if err := s.ExpenseRepo.Delete(ctx, id); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	return nil
}

// Cash book

func (s *LedgerService) CreateCashBookEntry(ctx context.Context, request *domain.CreateCashBookEntryRequest) (*domain.CashBookEntry, error) {
	if _, err := s.GetMember(ctx, request.MemberID); err != nil {
		return nil, err
	}

	entry := &domain.CashBookEntry{
		ID:          uuid.New(),
		MemberID:    request.MemberID,
		Date:        request.Date,
		Description: request.Description,
		Amount:      request.Amount,
		CreatedAt:   time.Now(),
	}

	if err := s.CashBook.Create(ctx, entry); err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return entry, nil
}

func (s *LedgerService) ListCashBookEntries(ctx context.Context, memberID *uuid.UUID) ([]*domain.CashBookEntry, error) {
	entries, err := s.CashBook.List(ctx, memberID)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return entries, nil
}
