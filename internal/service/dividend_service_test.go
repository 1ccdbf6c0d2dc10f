package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/tests/mocks"
)

type stubNotifier struct {
	calls int
}

func (s *stubNotifier) SendDividendDistributed(ctx context.Context, memberID uuid.UUID, gross, deductions decimal.Decimal) error {
	s.calls++
	return nil
}

func newDividendMocks() (*mocks.MockMemberRepository, *mocks.MockLoanRepository, *mocks.MockPaymentRepository, *mocks.MockAttendanceRepository, *mocks.MockDividendRepository) {
	return &mocks.MockMemberRepository{},
		&mocks.MockLoanRepository{},
		&mocks.MockPaymentRepository{},
		&mocks.MockAttendanceRepository{},
		&mocks.MockDividendRepository{}
}

func TestSettle_EvenSplitNoDeductions(t *testing.T) {
	memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo := newDividendMocks()
	notifier := &stubNotifier{}

	date := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	members := []*domain.Member{
		{ID: uuid.New(), Name: "Amara"},
		{ID: uuid.New(), Name: "Bandula"},
	}

	memberRepo.On("List", mock.Anything).Return(members, nil)
	dividendRepo.On("ExistsForPeriod", mock.Anything, "2024-06-30").Return(false, nil)
	attendanceRepo.On("SumBonusSince", mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	loanRepo.On("ListActiveByMember", mock.Anything, mock.Anything).Return([]*domain.Loan{}, nil)

	var settled []*domain.Dividend
	var settledPayments []*domain.LoanPayment
	dividendRepo.On("Settle", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			settled = args.Get(1).([]*domain.Dividend)
			settledPayments = args.Get(2).([]*domain.LoanPayment)
		}).
		Return(nil)

	svc := NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, notifier, testConfig(), testLogger())

	result, err := svc.Settle(context.Background(), &domain.SettleDividendsRequest{
		TotalProfit: decimal.NewFromInt(10000),
		Date:        date,
	})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "2024-06-30", result.Period)
	assert.Len(t, settled, 2)
	assert.Empty(t, settledPayments)

	for _, dividend := range settled {
		assert.True(t, dividend.ShareAmount.Equal(decimal.NewFromInt(5000)))
		assert.True(t, dividend.AnnualInterest.Equal(decimal.NewFromInt(250)))
		assert.True(t, dividend.Deductibles.IsZero())
		assert.True(t, dividend.Total.Equal(decimal.NewFromInt(5250)),
			"Expected 5250, got %v", dividend.Total)
	}

	assert.Equal(t, 2, notifier.calls)
}

func TestSettle_DeductsPendingInterest(t *testing.T) {
	memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo := newDividendMocks()

	date := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: uuid.New(), Name: "Amara"}
	loan := activeLoan(100000, 0.09, 365, date)
	loan.MemberID = member.ID

	memberRepo.On("List", mock.Anything).Return([]*domain.Member{member}, nil)
	dividendRepo.On("ExistsForPeriod", mock.Anything, "2024-06-30").Return(false, nil)
	attendanceRepo.On("SumBonusSince", mock.Anything, member.ID, mock.Anything).Return(decimal.NewFromInt(300), nil)
	loanRepo.On("ListActiveByMember", mock.Anything, member.ID).Return([]*domain.Loan{loan}, nil)
	// 9000 accrued over the year, 2000 already paid
	paymentRepo.On("SumInterestByLoan", mock.Anything, loan.ID).Return(decimal.NewFromInt(2000), nil)

	var settled []*domain.Dividend
	var settledPayments []*domain.LoanPayment
	dividendRepo.On("Settle", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			settled = args.Get(1).([]*domain.Dividend)
			settledPayments = args.Get(2).([]*domain.LoanPayment)
		}).
		Return(nil)

	svc := NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, nil, testConfig(), testLogger())

	result, err := svc.Settle(context.Background(), &domain.SettleDividendsRequest{
		TotalProfit: decimal.NewFromInt(10000),
		Date:        date,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Dividends, 1)

	dividend := settled[0]
	assert.True(t, dividend.ShareAmount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, dividend.AnnualInterest.Equal(decimal.NewFromInt(500)))
	assert.True(t, dividend.AttendingBonus.Equal(decimal.NewFromInt(300)))
	assert.True(t, dividend.Deductibles.Equal(decimal.NewFromInt(7000)),
		"Expected 7000, got %v", dividend.Deductibles)
	// 10000 + 500 + 300 - 7000
	assert.True(t, dividend.Total.Equal(decimal.NewFromInt(3800)),
		"Expected 3800, got %v", dividend.Total)

	// Compensating interest-only payment written in the same transaction.
	assert.Len(t, settledPayments, 1)
	assert.Equal(t, loan.ID, settledPayments[0].LoanID)
	assert.True(t, settledPayments[0].Premium.IsZero())
	assert.True(t, settledPayments[0].Interest.Equal(decimal.NewFromInt(7000)))
}

func TestSettle_DuplicatePeriodRejected(t *testing.T) {
	memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo := newDividendMocks()

	dividendRepo.On("ExistsForPeriod", mock.Anything, "2024-06-30").Return(true, nil)

	svc := NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, nil, testConfig(), testLogger())

	_, err := svc.Settle(context.Background(), &domain.SettleDividendsRequest{
		TotalProfit: decimal.NewFromInt(10000),
		Date:        time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	dividendRepo.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettle_RejectsNonPositiveProfit(t *testing.T) {
	memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo := newDividendMocks()

	svc := NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, nil, testConfig(), testLogger())

	_, err := svc.Settle(context.Background(), &domain.SettleDividendsRequest{
		TotalProfit: decimal.Zero,
		Date:        time.Now(),
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSettle_RejectsEmptyRoster(t *testing.T) {
	memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo := newDividendMocks()

	dividendRepo.On("ExistsForPeriod", mock.Anything, mock.Anything).Return(false, nil)
	memberRepo.On("List", mock.Anything).Return([]*domain.Member{}, nil)

	svc := NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, nil, testConfig(), testLogger())

	_, err := svc.Settle(context.Background(), &domain.SettleDividendsRequest{
		TotalProfit: decimal.NewFromInt(10000),
		Date:        time.Now(),
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
