package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Directory (WLT) ----

func ErrWalletNotFound(address string) *AppError {
	return New("WLT_001", fmt.Sprintf("Wallet %s not found", address), http.StatusNotFound)
}

func ErrCategoryUndefined(address string) *AppError {
	return New("WLT_002", fmt.Sprintf("Wallet %s has no eligibility category", address), http.StatusUnprocessableEntity)
}

func ErrBalanceUnavailable(address string) *AppError {
	return New("WLT_003", fmt.Sprintf("No balance recorded for wallet %s", address), http.StatusUnprocessableEntity)
}

// ---- Reward Calculation (RWD) ----

func ErrUnknownCategory(category string) *AppError {
	return New("RWD_001", fmt.Sprintf("Staking rules not defined for category %q", category), http.StatusUnprocessableEntity)
}

// ---- Ingestion Source (SRC) ----

func ErrSourceUnavailable(err error) *AppError {
	return Wrap("SRC_001", "Wallet source unavailable", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
