package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/service"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/sms"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/logging"
)

const jobTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.Logging.Level)
	logger.Info("starting bookkeeping scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	smsClient := sms.NewClient(cfg.SMS)
	accrualService := service.NewAccrualService(loanRepo, paymentRepo, interestRepo, cfg, logger)
	notificationService := service.NewNotificationService(loanRepo, memberRepo, paymentRepo, interestRepo, notificationRepo, smsClient, cfg, logger)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	c := cron.New(cron.WithLocation(location))
	setupCronJobs(c, cfg, accrualService, notificationService, logger)

	c.Start()
	logger.Info("scheduler started",
		"interest_cron", cfg.Scheduler.InterestCron,
		"overdue_cron", cfg.Scheduler.OverdueCron,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func setupCronJobs(
	c *cron.Cron,
	cfg *config.Config,
	accrual *service.AccrualService,
	notifications *service.NotificationService,
	logger *slog.Logger,
) {
	_, err := c.AddFunc(cfg.Scheduler.InterestCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		result, err := accrual.Run(ctx, time.Now())
		if err != nil {
			logger.Error("interest accrual job", "error", err)
			return
		}
		logger.Info("interest accrual job finished", "snapshots_written", len(result.Results))
	})
	if err != nil {
		log.Fatalf("Error scheduling interest accrual job: %v", err)
	}

	_, err = c.AddFunc(cfg.Scheduler.OverdueCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		result, err := notifications.DispatchOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("overdue notification job", "error", err)
			return
		}
		logger.Info("overdue notification job finished", "notifications_sent", result.NotificationsSent)
	})
	if err != nil {
		log.Fatalf("Error scheduling overdue notification job: %v", err)
	}
}
