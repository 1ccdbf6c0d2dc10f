package service

import (
	"context"
	"database/sql"
	"encoding/json"
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

type ledgerFixture struct {
	memberRepo *mocks.MockMemberRepository
	loanRepo   *mocks.MockLoanRepository
	cache      *mocks.MockLoanCache
	svc        *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		memberRepo: &mocks.MockMemberRepository{},
		loanRepo:   &mocks.MockLoanRepository{},
		cache:      &mocks.MockLoanCache{},
	}
	f.svc = NewLedgerService(f.memberRepo, f.loanRepo, &mocks.MockPaymentRepository{}, nil, nil, nil, nil, f.cache, testLogger())
	return f
}

func TestCreateLoan_DerivesRateFromType(t *testing.T) {
	f := newLedgerFixture()

	memberID := uuid.New()
	f.memberRepo.On("GetByID", mock.Anything, memberID).Return(&domain.Member{ID: memberID, Name: "Amara"}, nil)

	var created *domain.Loan
	f.loanRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Loan")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Loan)
		}).
		Return(nil)

	loan, err := f.svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		MemberID:  memberID,
		Type:      domain.LoanTypeMember,
		Principal: decimal.NewFromInt(100000),
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.True(t, loan.InterestRate.Equal(decimal.NewFromFloat(0.09)), "rate %s", loan.InterestRate)
	assert.True(t, loan.Balance.Equal(loan.Principal))
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.Equal(t, created.ID, loan.ID)
}

func TestCreateLoan_UnknownTypeRejected(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		MemberID:  uuid.New(),
		Type:      "PERSONAL",
		Principal: decimal.NewFromInt(100000),
		StartDate: time.Now(),
	})

	assert.True(t, apperrors.IsValidation(err))
	f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLoan_UnknownMemberRejected(t *testing.T) {
	f := newLedgerFixture()

	memberID := uuid.New()
	f.memberRepo.On("GetByID", mock.Anything, memberID).Return(nil, sql.ErrNoRows)

	_, err := f.svc.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		MemberID:  memberID,
		Type:      domain.LoanTypeSpecial,
		Principal: decimal.NewFromInt(50000),
		StartDate: time.Now(),
	})

	assert.True(t, apperrors.IsNotFound(err))
	f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetLoan_CacheHitSkipsDatabase(t *testing.T) {
	f := newLedgerFixture()

	loan := activeLoan(100000, 0.09, 100, time.Now())
	encoded, err := json.Marshal(loan)
	assert.NoError(t, err)

	f.cache.On("Get", mock.Anything, "loan:"+loan.ID.String()).Return(string(encoded), true)

	got, err := f.svc.GetLoan(context.Background(), loan.ID)

	assert.NoError(t, err)
	assert.Equal(t, loan.ID, got.ID)
	assert.True(t, got.Balance.Equal(loan.Balance))
	f.loanRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetLoan_CacheMissRepopulates(t *testing.T) {
	f := newLedgerFixture()

	loan := activeLoan(100000, 0.09, 100, time.Now())
	cacheKey := "loan:" + loan.ID.String()

	f.cache.On("Get", mock.Anything, cacheKey).Return("", false)
	f.loanRepo.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	f.cache.On("Set", mock.Anything, cacheKey, mock.AnythingOfType("string"), loanCacheTTL).Return(nil)

	got, err := f.svc.GetLoan(context.Background(), loan.ID)

	assert.NoError(t, err)
	assert.Equal(t, loan.ID, got.ID)
	f.cache.AssertExpectations(t)
}

func TestRecordPayment_RejectsEmptyPayment(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.RecordPayment(context.Background(), uuid.New(), &domain.CreatePaymentRequest{
		Date: time.Now(),
	})

	assert.True(t, apperrors.IsValidation(err))
	f.loanRepo.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
}

func TestRecordPayment_RejectsNegativeAmounts(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.RecordPayment(context.Background(), uuid.New(), &domain.CreatePaymentRequest{
		Date:    time.Now(),
		Premium: decimal.NewFromInt(-500),
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestRecordPayment_UnknownLoanRejected(t *testing.T) {
	f := newLedgerFixture()

	loanID := uuid.New()
	f.loanRepo.On("GetByID", mock.Anything, loanID).Return(nil, sql.ErrNoRows)

	_, err := f.svc.RecordPayment(context.Background(), loanID, &domain.CreatePaymentRequest{
		Date:    time.Now(),
		Premium: decimal.NewFromInt(500),
	})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecordPayment_AppliesAndInvalidatesCache(t *testing.T) {
	f := newLedgerFixture()

	now := time.Now()
	loan := activeLoan(100000, 0.09, 100, now)
	updated := *loan
	updated.Balance = decimal.NewFromInt(95000)

	f.loanRepo.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	f.loanRepo.On("RecordPayment", mock.Anything, mock.AnythingOfType("*domain.LoanPayment")).Return(&updated, nil)
	f.cache.On("Del", mock.Anything, "loan:"+loan.ID.String()).Return(nil)

	response, err := f.svc.RecordPayment(context.Background(), loan.ID, &domain.CreatePaymentRequest{
		Date:     now,
		Premium:  decimal.NewFromInt(5000),
		Interest: decimal.NewFromFloat(739.726),
	})

	assert.NoError(t, err)
	assert.True(t, response.Balance.Equal(decimal.NewFromInt(95000)))
	assert.Equal(t, domain.LoanStatusActive, response.Status)
	assert.True(t, response.Payment.Interest.Equal(decimal.NewFromFloat(739.73)), "interest rounded to %s", response.Payment.Interest)
	f.cache.AssertExpectations(t)
}

func TestRecordPayment_InterestOnlyKeepsBalance(t *testing.T) {
	f := newLedgerFixture()

	now := time.Now()
	loan := activeLoan(100000, 0.09, 100, now)

	f.loanRepo.On("GetByID", mock.Anything, loan.ID).Return(loan, nil)
	f.loanRepo.On("RecordPayment", mock.Anything, mock.AnythingOfType("*domain.LoanPayment")).Return(loan, nil)
	f.cache.On("Del", mock.Anything, "loan:"+loan.ID.String()).Return(nil)

	response, err := f.svc.RecordPayment(context.Background(), loan.ID, &domain.CreatePaymentRequest{
		Date:     now,
		Interest: decimal.NewFromInt(2465),
	})

	assert.NoError(t, err)
	assert.True(t, response.Balance.Equal(loan.Balance))
	assert.True(t, response.Payment.Premium.IsZero())
}
