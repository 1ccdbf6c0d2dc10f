package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/utils"
)

// DividendNotifier announces a settled dividend to the member. SMS failures
// are recorded on the notification row, never surfaced to the settlement.
type DividendNotifier interface {
	SendDividendDistributed(ctx context.Context, memberID uuid.UUID, gross, deductions decimal.Decimal) error
}

// DividendService settles a quarterly profit distribution across members.
type DividendService struct {
	MemberRepo     repository.MemberRepository
	LoanRepo       repository.LoanRepository
	PaymentRepo    repository.PaymentRepository
	AttendanceRepo repository.AttendanceRepository
	DividendRepo   repository.DividendRepository
	notifier       DividendNotifier
	config         *config.Config
	logger         *slog.Logger
}

func NewDividendService(
	memberRepo repository.MemberRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	attendanceRepo repository.AttendanceRepository,
	dividendRepo repository.DividendRepository,
	notifier DividendNotifier,
	cfg *config.Config,
	logger *slog.Logger,
) *DividendService {
	return &DividendService{
		MemberRepo:     memberRepo,
		LoanRepo:       loanRepo,
		PaymentRepo:    paymentRepo,
		AttendanceRepo: attendanceRepo,
		DividendRepo:   dividendRepo,
		notifier:       notifier,
		config:         cfg,
		logger:         logger,
	}
}

// Settle splits totalProfit evenly across all members, adds 5% annual
// interest on each share plus the attendance bonus for the trailing window,
// and nets out each member's pending loan interest as a deduction. Every
// dividend row and compensating interest payment is written in a single
// transaction; a duplicate period is rejected with nothing written.
func (s *DividendService) Settle(ctx context.Context, request *domain.SettleDividendsRequest) (*domain.SettleDividendsResponse, error) {
	if !request.TotalProfit.IsPositive() {
		return nil, apperrors.WrapValidation(apperrors.ErrInvalidProfit)
	}

	period := request.Date.Format("2006-01-02")

	exists, err := s.DividendRepo.ExistsForPeriod(ctx, period)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if exists {
		return nil, apperrors.WrapPeriodAlreadySettled(period)
	}

	members, err := s.MemberRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	if len(members) == 0 {
		return nil, apperrors.WrapValidation(apperrors.ErrNoMembers)
	}

	shareAmount := request.TotalProfit.Div(decimal.NewFromInt(int64(len(members)))).Round(2)
	annualInterest := shareAmount.Mul(s.config.GetDividendInterestRate()).Round(2)
	bonusCutoff := request.Date.AddDate(0, -s.config.Business.AttendanceWindowMonths, 0)

	dividends := make([]*domain.Dividend, 0, len(members))
	payments := []*domain.LoanPayment{}

	for _, member := range members {
		attendingBonus, err := s.AttendanceRepo.SumBonusSince(ctx, member.ID, bonusCutoff)
		if err != nil {
			return nil, apperrors.WrapDatabaseError(err)
		}

		deductibles, memberPayments, err := s.settleMemberInterest(ctx, member.ID, request.Date)
		if err != nil {
			return nil, err
		}
		payments = append(payments, memberPayments...)

		total := shareAmount.Add(annualInterest).Add(attendingBonus).Sub(deductibles)

		dividends = append(dividends, &domain.Dividend{
			ID:             uuid.New(),
			MemberID:       member.ID,
			Date:           request.Date,
			Period:         period,
			ShareAmount:    shareAmount,
			AnnualInterest: annualInterest,
			AttendingBonus: attendingBonus,
			Deductibles:    deductibles,
			Total:          total,
			CreatedAt:      time.Now(),
		})
	}

	if err := s.DividendRepo.Settle(ctx, dividends, payments); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.WrapPeriodAlreadySettled(period)
		}
		return nil, apperrors.WrapDatabaseError(err)
	}

	s.logger.Info("dividend settlement complete",
		"period", period,
		"members", len(dividends),
		"interest_payments", len(payments),
	)

	// Announcements happen after commit; a failed SMS never unwinds the run.
	if s.notifier != nil {
		for _, dividend := range dividends {
			gross := dividend.Total.Add(dividend.Deductibles)
			if err := s.notifier.SendDividendDistributed(ctx, dividend.MemberID, gross, dividend.Deductibles); err != nil {
				s.logger.Error("dividend notification", "member_id", dividend.MemberID, "error", err)
			}
		}
	}

	return &domain.SettleDividendsResponse{
		Success:   true,
		Period:    period,
		Dividends: dividends,
	}, nil
}

// settleMemberInterest derives the member's pending interest over active
// loans and builds the compensating interest-only payment per loan.
func (s *DividendService) settleMemberInterest(ctx context.Context, memberID uuid.UUID, date time.Time) (decimal.Decimal, []*domain.LoanPayment, error) {
	loans, err := s.LoanRepo.ListActiveByMember(ctx, memberID)
	if err != nil {
		return decimal.Zero, nil, apperrors.WrapDatabaseError(err)
	}

	deductibles := decimal.Zero
	payments := []*domain.LoanPayment{}

	for _, loan := range loans {
		paidInterest, err := s.PaymentRepo.SumInterestByLoan(ctx, loan.ID)
		if err != nil {
			return decimal.Zero, nil, apperrors.WrapDatabaseError(err)
		}

		days := utils.DaysElapsed(loan.StartDate, date)
		pending := utils.PendingInterest(loan.Principal, loan.InterestRate, days, paidInterest).Round(2)
		if !pending.IsPositive() {
			continue
		}

		deductibles = deductibles.Add(pending)
		payments = append(payments, &domain.LoanPayment{
			ID:        uuid.New(),
			LoanID:    loan.ID,
			Date:      date,
			Premium:   decimal.Zero,
			Interest:  pending,
			CreatedAt: time.Now(),
		})
	}

	return deductibles, payments, nil
}

// List returns all settled dividends, most recent first.
func (s *DividendService) List(ctx context.Context) ([]*domain.Dividend, error) {
	dividends, err := s.DividendRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return dividends, nil
}
