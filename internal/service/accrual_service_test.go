package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			AccrualThreshold:       "1",
			DividendInterestRate:   "0.05",
			OverdueDays:            30,
			AttendanceWindowMonths: 3,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeLoan(principal int64, rate float64, daysAgo int, now time.Time) *domain.Loan {
	p := decimal.NewFromInt(principal)
	return &domain.Loan{
		ID:           uuid.New(),
		MemberID:     uuid.New(),
		Type:         domain.LoanTypeMember,
		Principal:    p,
		InterestRate: decimal.NewFromFloat(rate),
		StartDate:    now.AddDate(0, 0, -daysAgo),
		Balance:      p,
		Status:       domain.LoanStatusActive,
	}
}

func TestAccrualRun_WritesSnapshot(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockInterestRepo := &mocks.MockInterestRepository{}

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	loan := activeLoan(100000, 0.09, 100, now)

	mockLoanRepo.On("ListActive", mock.Anything).Return([]*domain.Loan{loan}, nil)
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, loan.ID).Return(decimal.Zero, nil)

	var written *domain.InterestCalculation
	mockInterestRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InterestCalculation")).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(*domain.InterestCalculation)
		}).
		Return(true, nil)

	svc := NewAccrualService(mockLoanRepo, mockPaymentRepo, mockInterestRepo, testConfig(), testLogger())

	result, err := svc.Run(context.Background(), now)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Results, 1)

	// 100000 * 0.09 * 100 / 365 = 2465.75
	expected := decimal.NewFromFloat(2465.75)
	assert.True(t, result.Results[0].PendingInterest.Equal(expected),
		"Expected %v, got %v", expected, result.Results[0].PendingInterest)
	assert.Equal(t, 100, result.Results[0].DaysElapsed)

	assert.NotNil(t, written)
	assert.Equal(t, loan.ID, written.LoanID)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), written.RunDate)
	mockInterestRepo.AssertExpectations(t)
}

func TestAccrualRun_SubtractsPaidInterest(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockInterestRepo := &mocks.MockInterestRepository{}

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	loan := activeLoan(100000, 0.09, 365, now)

	mockLoanRepo.On("ListActive", mock.Anything).Return([]*domain.Loan{loan}, nil)
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, loan.ID).Return(decimal.NewFromInt(4000), nil)
	mockInterestRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InterestCalculation")).Return(true, nil)

	svc := NewAccrualService(mockLoanRepo, mockPaymentRepo, mockInterestRepo, testConfig(), testLogger())

	result, err := svc.Run(context.Background(), now)

	assert.NoError(t, err)
	assert.Len(t, result.Results, 1)

	// 9000 accrued minus 4000 paid
	expected := decimal.NewFromInt(5000)
	assert.True(t, result.Results[0].PendingInterest.Equal(expected),
		"Expected %v, got %v", expected, result.Results[0].PendingInterest)
}

func TestAccrualRun_BelowThresholdSkipped(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockInterestRepo := &mocks.MockInterestRepository{}

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// One day of interest on a tiny loan stays under the 1-rupee threshold.
	loan := activeLoan(1000, 0.09, 1, now)

	mockLoanRepo.On("ListActive", mock.Anything).Return([]*domain.Loan{loan}, nil)
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, loan.ID).Return(decimal.Zero, nil)

	svc := NewAccrualService(mockLoanRepo, mockPaymentRepo, mockInterestRepo, testConfig(), testLogger())

	result, err := svc.Run(context.Background(), now)

	assert.NoError(t, err)
	assert.Empty(t, result.Results)
	mockInterestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccrualRun_SameDayRerunIsNoOp(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockInterestRepo := &mocks.MockInterestRepository{}

	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	loan := activeLoan(100000, 0.09, 100, now)

	mockLoanRepo.On("ListActive", mock.Anything).Return([]*domain.Loan{loan}, nil)
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, loan.ID).Return(decimal.Zero, nil)
	// The run-date constraint already holds a snapshot for today.
	mockInterestRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InterestCalculation")).Return(false, nil)

	svc := NewAccrualService(mockLoanRepo, mockPaymentRepo, mockInterestRepo, testConfig(), testLogger())

	result, err := svc.Run(context.Background(), now)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Results)
}

func TestAccrualRun_PerLoanFailureDoesNotAbortBatch(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockInterestRepo := &mocks.MockInterestRepository{}

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	badLoan := activeLoan(100000, 0.09, 100, now)
	goodLoan := activeLoan(50000, 0.12, 200, now)

	mockLoanRepo.On("ListActive", mock.Anything).Return([]*domain.Loan{badLoan, goodLoan}, nil)
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, badLoan.ID).Return(decimal.Zero, errors.New("connection reset"))
	mockPaymentRepo.On("SumInterestByLoan", mock.Anything, goodLoan.ID).Return(decimal.Zero, nil)
	mockInterestRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InterestCalculation")).Return(true, nil)

	svc := NewAccrualService(mockLoanRepo, mockPaymentRepo, mockInterestRepo, testConfig(), testLogger())

	result, err := svc.Run(context.Background(), now)

	assert.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, goodLoan.ID, result.Results[0].LoanID)
}
