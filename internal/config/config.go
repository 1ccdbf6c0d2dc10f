package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	SMS       SMSConfig       `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	InterestCron string `mapstructure:"CRON_INTEREST_CALCULATION"`
	OverdueCron  string `mapstructure:"CRON_OVERDUE_NOTIFICATION"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type SMSConfig struct {
	UserID   string `mapstructure:"NOTIFY_LK_USER_ID"`
	APIKey   string `mapstructure:"NOTIFY_LK_API_KEY"`
	SenderID string `mapstructure:"NOTIFY_LK_SENDER_ID"`
	BaseURL  string `mapstructure:"NOTIFY_LK_BASE_URL"`
}

type BusinessConfig struct {
	AccrualThreshold       string `mapstructure:"ACCRUAL_THRESHOLD"`
	DividendInterestRate   string `mapstructure:"DIVIDEND_INTEREST_RATE"`
	OverdueDays            int    `mapstructure:"OVERDUE_DAYS"`
	AttendanceWindowMonths int    `mapstructure:"ATTENDANCE_WINDOW_MONTHS"`
}

type LoggingConfig struct {
	Level string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CRON_INTEREST_CALCULATION", "0 0 * * *")
	viper.SetDefault("CRON_OVERDUE_NOTIFICATION", "0 9 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Colombo")
	viper.SetDefault("NOTIFY_LK_SENDER_ID", "Sahana")
	viper.SetDefault("NOTIFY_LK_BASE_URL", "https://app.notify.lk/api/v1/send")
	viper.SetDefault("ACCRUAL_THRESHOLD", "1")
	viper.SetDefault("DIVIDEND_INTEREST_RATE", "0.05")
	viper.SetDefault("OVERDUE_DAYS", 30)
	viper.SetDefault("ATTENDANCE_WINDOW_MONTHS", 3)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.OverdueDays <= 0 {
		return fmt.Errorf("OVERDUE_DAYS must be greater than 0")
	}

	if c.Business.AttendanceWindowMonths <= 0 {
		return fmt.Errorf("ATTENDANCE_WINDOW_MONTHS must be greater than 0")
	}

	if _, err := decimal.NewFromString(c.Business.AccrualThreshold); err != nil {
		return fmt.Errorf("ACCRUAL_THRESHOLD must be a valid decimal: %w", err)
	}

	if _, err := decimal.NewFromString(c.Business.DividendInterestRate); err != nil {
		return fmt.Errorf("DIVIDEND_INTEREST_RATE must be a valid decimal: %w", err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Scheduler.InterestCron); err != nil {
		return fmt.Errorf("CRON_INTEREST_CALCULATION is not a valid cron spec: %w", err)
	}
	if _, err := parser.Parse(c.Scheduler.OverdueCron); err != nil {
		return fmt.Errorf("CRON_OVERDUE_NOTIFICATION is not a valid cron spec: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetAccrualThreshold returns the minimum pending interest worth snapshotting
func (c *Config) GetAccrualThreshold() decimal.Decimal {
	threshold, _ := decimal.NewFromString(c.Business.AccrualThreshold)
	return threshold
}

// GetDividendInterestRate returns the annual interest rate applied to each share
func (c *Config) GetDividendInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DividendInterestRate)
	return rate
}

// RedisAddr returns the host:port address for the Redis client
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}
