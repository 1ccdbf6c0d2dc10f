package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/domain"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/sms"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/utils"
)

// NotificationService scans for overdue interest and dispatches SMS
// notifications, recording each attempt's outcome.
type NotificationService struct {
	LoanRepo         repository.LoanRepository
	MemberRepo       repository.MemberRepository
	PaymentRepo      repository.PaymentRepository
	InterestRepo     repository.InterestRepository
	NotificationRepo repository.NotificationRepository
	sender           sms.Sender
	config           *config.Config
	logger           *slog.Logger
}

func NewNotificationService(
	loanRepo repository.LoanRepository,
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	interestRepo repository.InterestRepository,
	notificationRepo repository.NotificationRepository,
	sender sms.Sender,
	cfg *config.Config,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		LoanRepo:         loanRepo,
		MemberRepo:       memberRepo,
		PaymentRepo:      paymentRepo,
		InterestRepo:     interestRepo,
		NotificationRepo: notificationRepo,
		sender:           sender,
		config:           cfg,
		logger:           logger,
	}
}

// DispatchOverdue walks active loans, finds those whose last payment is at
// least OverdueDays old, and sends an interest-due SMS per qualifying loan.
// Loans without an interest snapshot are skipped. A per-loan failure is
// logged and does not abort the scan.
func (s *NotificationService) DispatchOverdue(ctx context.Context, now time.Time) (*domain.OverdueResponse, error) {
	loans, err := s.LoanRepo.ListActive(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	details := []*domain.OverdueDetail{}

	for _, loan := range loans {
		detail, err := s.processLoan(ctx, loan, now)
		if err != nil {
			s.logger.Error("processing overdue loan", "loan_id", loan.ID, "error", err)
			continue
		}
		if detail != nil {
			details = append(details, detail)
		}
	}

	s.logger.Info("overdue notification scan complete", "loans_scanned", len(loans), "notifications_sent", len(details))

	return &domain.OverdueResponse{
		Success:           true,
		NotificationsSent: len(details),
		Details:           details,
	}, nil
}

func (s *NotificationService) processLoan(ctx context.Context, loan *domain.Loan, now time.Time) (*domain.OverdueDetail, error) {
	lastCalc, err := s.InterestRepo.GetLatestByLoan(ctx, loan.ID)
	if err != nil {
		return nil, err
	}
	if lastCalc == nil {
		return nil, nil
	}

	lastPayment, err := s.PaymentRepo.GetLatest(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	lastPaymentDate := loan.StartDate
	if lastPayment != nil {
		lastPaymentDate = lastPayment.Date
	}

	daysSincePayment := utils.DaysBetween(now, lastPaymentDate)
	if daysSincePayment < s.config.Business.OverdueDays {
		return nil, nil
	}

	member, err := s.MemberRepo.GetByID(ctx, loan.MemberID)
	if err != nil {
		return nil, err
	}

	if err := s.sendInterestDue(ctx, member, loan.ID, lastCalc.InterestAmount, now); err != nil {
		return nil, err
	}

	return &domain.OverdueDetail{
		MemberID:         member.ID,
		MemberName:       member.Name,
		LoanID:           loan.ID,
		PendingInterest:  lastCalc.InterestAmount,
		DaysSincePayment: daysSincePayment,
	}, nil
}

func (s *NotificationService) sendInterestDue(ctx context.Context, member *domain.Member, loanID uuid.UUID, amount decimal.Decimal, dueDate time.Time) error {
	message := fmt.Sprintf(
		"Dear %s, your loan interest payment of Rs.%s is due on %s. Please pay to avoid deduction from dividends.",
		member.Name, amount.StringFixed(2), dueDate.Format("2006-01-02"),
	)

	return s.dispatch(ctx, member, &loanID, domain.NotificationTypeInterestDue, message)
}

// SendPaymentReminder requests a gentler reminder for pending interest.
func (s *NotificationService) SendPaymentReminder(ctx context.Context, memberID, loanID uuid.UUID, amount decimal.Decimal) error {
	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Dear %s, this is a reminder for your pending loan interest payment of Rs.%s. Please pay at your earliest convenience.",
		member.Name, amount.StringFixed(2),
	)

	return s.dispatch(ctx, member, &loanID, domain.NotificationTypePaymentReminder, message)
}

// SendDividendDistributed announces a settled dividend.
func (s *NotificationService) SendDividendDistributed(ctx context.Context, memberID uuid.UUID, gross, deductions decimal.Decimal) error {
	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return err
	}

	deductionsNote := ""
	if deductions.IsPositive() {
		deductionsNote = fmt.Sprintf("Interest deductions: Rs.%s. ", deductions.StringFixed(2))
	}
	message := fmt.Sprintf(
		"Dear %s, your quarterly dividend of Rs.%s has been calculated. %sNet amount: Rs.%s.",
		member.Name, gross.StringFixed(2), deductionsNote, gross.Sub(deductions).StringFixed(2),
	)

	return s.dispatch(ctx, member, nil, domain.NotificationTypeDividendDistributed, message)
}

// dispatch creates the PENDING row, attempts the SMS, and records the
// outcome exactly once, whatever the gateway result.
func (s *NotificationService) dispatch(ctx context.Context, member *domain.Member, loanID *uuid.UUID, notificationType, message string) error {
	if member.ContactNumber == "" {
		return apperrors.ErrMissingContactNumber
	}

	notification := &domain.Notification{
		ID:        uuid.New(),
		MemberID:  member.ID,
		LoanID:    loanID,
		Type:      notificationType,
		Message:   message,
		Status:    domain.NotificationStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.NotificationRepo.Create(ctx, notification); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	status := domain.NotificationStatusFailed
	var sentAt *time.Time

	result, err := s.sender.Send(ctx, member.ContactNumber, message)
	if err != nil {
		s.logger.Error("sms send", "member_id", member.ID, "error", err)
	} else if result.Success {
		status = domain.NotificationStatusSent
		now := time.Now()
		sentAt = &now
	} else {
		s.logger.Warn("sms rejected by gateway", "member_id", member.ID, "gateway_error", result.Error)
	}

	if err := s.NotificationRepo.UpdateStatus(ctx, notification.ID, status, sentAt); err != nil {
		return apperrors.WrapDatabaseError(err)
	}

	return nil
}

func (s *NotificationService) getMember(ctx context.Context, memberID uuid.UUID) (*domain.Member, error) {
	member, err := s.MemberRepo.GetByID(ctx, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.WrapMemberNotFound(memberID.String())
	}
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}
	return member, nil
}

// List returns all notification records, most recent first.
func (s *NotificationService) List(ctx context.Context) ([]*domain.Notification, error) {
	notifications, err := s.NotificationRepo.List(ctx)
	if err != nil {
		return nil, apperrors.WrapDatabaseError(err)
	}

	return notifications, nil
}
