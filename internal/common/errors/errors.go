package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"

	// Raffle errors
	ErrCodeRaffleNotFound  ErrorCode = "RAFFLE_NOT_FOUND"
	ErrCodeMalformedObject ErrorCode = "MALFORMED_OBJECT"

	// Wallet errors
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeNoCoins           ErrorCode = "NO_COINS"
	ErrCodeNoAdminCap        ErrorCode = "NO_ADMIN_CAP"

	// External boundaries
	ErrCodeRPC   ErrorCode = "RPC_ERROR"
	ErrCodeCache ErrorCode = "CACHE_ERROR"
)

// AppError is a typed application error carrying a code and optional details.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is a missing-resource error.
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound || e.Code == ErrCodeRaffleNotFound || e.Code == ErrCodeNoAdminCap
}

// IsValidation reports whether the error is a caller-input error.
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

// IsInternal reports whether the error is an internal or upstream failure.
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeRPC || e.Code == ErrCodeCache
}

// WithDetail attaches a detail entry to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID attaches the originating request id.
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with an application code.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewValidationError creates a caller-input error for a named field.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewRaffleNotFoundError creates a missing-raffle error.
func NewRaffleNotFoundError(raffleID string) *AppError {
	return New(ErrCodeRaffleNotFound, fmt.Sprintf("Raffle not found: %s", raffleID)).
		WithDetail("raffle_id", raffleID)
}

// NewInsufficientFundsError reports a shortfall in the requested coin type.
// Amounts are in the token's smallest unit; formatting is a caller concern.
func NewInsufficientFundsError(coinType string, required, available uint64) *AppError {
	return New(ErrCodeInsufficientFunds,
		fmt.Sprintf("Insufficient funds: required %d, available %d (%s)", required, available, coinType)).
		WithDetail("coin_type", coinType).
		WithDetail("required", required).
		WithDetail("available", available)
}

// NewNoCoinsError reports that the owner holds no usable coins of a type.
func NewNoCoinsError(owner, coinType string) *AppError {
	return New(ErrCodeNoCoins, fmt.Sprintf("No coins of type %s owned by %s", coinType, owner)).
		WithDetail("owner", owner).
		WithDetail("coin_type", coinType)
}

// NewNoAdminCapError reports that the address holds no admin capability.
func NewNoAdminCapError(address string) *AppError {
	return New(ErrCodeNoAdminCap, fmt.Sprintf("No admin capability owned by %s", address)).
		WithDetail("address", address)
}

// NewRPCError wraps a fullnode RPC failure.
func NewRPCError(method string, err error) *AppError {
	return Wrap(err, ErrCodeRPC, fmt.Sprintf("RPC call failed: %s", method)).
		WithDetail("method", method)
}

// AsAppError casts an error to AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
