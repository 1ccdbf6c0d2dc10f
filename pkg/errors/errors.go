package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrBankNotFound         = errors.New("bank not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrEmptyPayment         = errors.New("payment must include a premium or interest amount")
	ErrInvalidLoanType      = errors.New("invalid loan type")
	ErrInvalidProfit        = errors.New("total profit must be greater than zero")
	ErrNoMembers            = errors.New("no members to distribute to")
	ErrPeriodAlreadySettled = errors.New("dividends already settled for this period")
	ErrMissingContactNumber = errors.New("member has no contact number")
	ErrInvalidPhoneNumber   = errors.New("invalid phone number format")
	ErrSMSNotConfigured     = errors.New("sms gateway credentials not configured")
)

// AppError carries a machine-readable code alongside the message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeCacheError    = "CACHE_ERROR"
	ErrCodeSMSError      = "SMS_ERROR"
)

// Wrap common errors with request context.
func WrapValidation(err error) *AppError {
	return New(ErrCodeValidation, err.Error(), err)
}

func WrapMemberNotFound(memberID string) *AppError {
	return New(
		ErrCodeNotFound,
		fmt.Sprintf("member %s not found", memberID),
		ErrMemberNotFound,
	)
}

func WrapLoanNotFound(loanID string) *AppError {
	return New(
		ErrCodeNotFound,
		fmt.Sprintf("loan %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapBankNotFound(bankID string) *AppError {
	return New(
		ErrCodeNotFound,
		fmt.Sprintf("bank %s not found", bankID),
		ErrBankNotFound,
	)
}

func WrapExpenseNotFound(expenseID string) *AppError {
	return New(
		ErrCodeNotFound,
		fmt.Sprintf("expense %s not found", expenseID),
		ErrExpenseNotFound,
	)
}

func WrapPeriodAlreadySettled(period string) *AppError {
	return New(
		ErrCodeConflict,
		fmt.Sprintf("dividends already settled for period %s", period),
		ErrPeriodAlreadySettled,
	)
}

func WrapDatabaseError(err error) *AppError {
	return New(ErrCodeDatabaseError, "database operation failed", err)
}

func WrapCacheError(err error) *AppError {
	return New(ErrCodeCacheError, "cache operation failed", err)
}

func WrapSMSError(err error) *AppError {
	return New(ErrCodeSMSError, "sms send failed", err)
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

// IsValidation reports whether err carries the VALIDATION_ERROR code.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

// IsConflict reports whether err carries the CONFLICT code.
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConflict
}
