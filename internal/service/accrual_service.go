package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/utils"
)

// AccrualService runs the daily interest accrual over active loans.
type AccrualService struct {
	LoanRepo     repository.LoanRepository
	PaymentRepo  repository.PaymentRepository
	InterestRepo repository.InterestRepository
	config       *config.Config
	logger       *slog.Logger
}

func NewAccrualService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	interestRepo repository.InterestRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *AccrualService {
	return &AccrualService{
		LoanRepo:     loanRepo,
		PaymentRepo:  paymentRepo,
		InterestRepo: interestRepo,
		config:       cfg,
		logger:       logger,
	}
}

// Run computes pending interest for every active loan and snapshots any
// amount above the threshold. A per-loan failure is logged and skipped so
// one bad record cannot abort the batch. Re-running on the same calendar
// day is a no-op per loan because of the (loan_id, run_date) constraint.
func (s *AccrualService) Run(ctx context.Context, now time.Time) (*domain.AccrualResponse, error) {
	loans, err := s.LoanRepo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	threshold := s.config.GetAccrualThreshold()
	results := []*domain.AccrualResult{}

	for _, loan := range loans {
		paidInterest, err := s.PaymentRepo.SumInterestByLoan(ctx, loan.ID)
		if err != nil {
			s.logger.Error("summing paid interest", "loan_id", loan.ID, "error", err)
			continue
		}

		days := utils.DaysElapsed(loan.StartDate, now)
		pending := utils.PendingInterest(loan.Principal, loan.InterestRate, days, paidInterest)

		if !pending.GreaterThan(threshold) {
			continue
		}

		calc := &domain.InterestCalculation{
			ID:              uuid.New(),
			LoanID:          loan.ID,
			CalculationDate: now,
			RunDate:         utils.DateOnly(now),
			DaysElapsed:     days,
			InterestAmount:  pending.Round(2),
			CreatedAt:       time.Now(),
		}

		inserted, err := s.InterestRepo.Create(ctx, calc)
		if err != nil {
			s.logger.Error("writing interest snapshot", "loan_id", loan.ID, "error", err)
			continue
		}
		if !inserted {
			s.logger.Debug("snapshot already written for run date", "loan_id", loan.ID, "run_date", calc.RunDate)
			continue
		}

		results = append(results, &domain.AccrualResult{
			LoanID:          loan.ID,
			MemberID:        loan.MemberID,
			PendingInterest: calc.InterestAmount,
			DaysElapsed:     days,
		})
	}

	s.logger.Info("interest accrual run complete", "loans_scanned", len(loans), "snapshots_written", len(results))

	return &domain.AccrualResponse{
		Success:      true,
		CalculatedAt: now,
		Results:      results,
	}, nil
}
