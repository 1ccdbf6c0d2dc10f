package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/handler"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/repository"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/service"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/sms"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/logging"
	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg.Logging.Level)

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	dividendRepo := repository.NewDividendRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	cashBookRepo := repository.NewCashBookRepository(db)
	bankRepo := repository.NewBankRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	loanCache := repository.NewLoanCache(redisClient)

	// Services
	smsClient := sms.NewClient(cfg.SMS)
	ledgerService := service.NewLedgerService(memberRepo, loanRepo, paymentRepo, bankRepo, expenseRepo, cashBookRepo, attendanceRepo, loanCache, logger)
	accrualService := service.NewAccrualService(loanRepo, paymentRepo, interestRepo, cfg, logger)
	notificationService := service.NewNotificationService(loanRepo, memberRepo, paymentRepo, interestRepo, notificationRepo, smsClient, cfg, logger)
	dividendService := service.NewDividendService(memberRepo, loanRepo, paymentRepo, attendanceRepo, dividendRepo, notificationService, cfg, logger)

	// Handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	dividendHandler := handler.NewDividendHandler(dividendService)
	jobsHandler := handler.NewJobsHandler(accrualService, notificationService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(ledgerHandler, dividendHandler, jobsHandler, healthHandler)
	router.Use(response.LoggingMiddleware(logger))
	router.Use(response.CORSMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	ledgerHandler *handler.LedgerHandler,
	dividendHandler *handler.DividendHandler,
	jobsHandler *handler.JobsHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Members
	router.HandleFunc("/members", ledgerHandler.ListMembers).Methods("GET")
	router.HandleFunc("/members", ledgerHandler.CreateMember).Methods("POST")
	router.HandleFunc("/members/{id}", ledgerHandler.GetMember).Methods("GET")
	router.HandleFunc("/members/{id}/attendance", ledgerHandler.RecordAttendance).Methods("POST")

	// Loans and payments
	router.HandleFunc("/loans", ledgerHandler.ListLoans).Methods("GET")
	router.HandleFunc("/loans", ledgerHandler.CreateLoan).Methods("POST")
	router.HandleFunc("/loans/{id}", ledgerHandler.GetLoan).Methods("GET")
	router.HandleFunc("/loans/{id}/payments", ledgerHandler.ListPayments).Methods("GET")
	router.HandleFunc("/loans/{id}/payments", ledgerHandler.RecordPayment).Methods("POST")

	// Dividends
	router.HandleFunc("/dividends", dividendHandler.List).Methods("GET")
	router.HandleFunc("/dividends/calculate", dividendHandler.Settle).Methods("POST")

	// Scheduled jobs, also reachable on demand
	router.HandleFunc("/cron/calculate-interest", jobsHandler.CalculateInterest).Methods("GET")
	router.HandleFunc("/notifications/overdue-interest", jobsHandler.OverdueInterest).Methods("GET")
	router.HandleFunc("/notifications", jobsHandler.ListNotifications).Methods("GET")

	// Expenses
	router.HandleFunc("/expenses", ledgerHandler.ListExpenses).Methods("GET")
	router.HandleFunc("/expenses", ledgerHandler.CreateExpense).Methods("POST")
	router.HandleFunc("/expenses/{id}", ledgerHandler.GetExpense).Methods("GET")
	router.HandleFunc("/expenses/{id}", ledgerHandler.UpdateExpense).Methods("PUT")
	router.HandleFunc("/expenses/{id}", ledgerHandler.DeleteExpense).Methods("DELETE")

	// Banks and deposits
	router.HandleFunc("/banks", ledgerHandler.ListBanks).Methods("GET")
	router.HandleFunc("/banks", ledgerHandler.CreateBank).Methods("POST")
	router.HandleFunc("/banks/{id}/fixed-deposits", ledgerHandler.CreateFixedDeposit).Methods("POST")

	// Cash book
	router.HandleFunc("/cash-book", ledgerHandler.ListCashBookEntries).Methods("GET")
	router.HandleFunc("/cash-book", ledgerHandler.CreateCashBookEntry).Methods("POST")

	return router
}
