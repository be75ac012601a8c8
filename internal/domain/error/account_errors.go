package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnauthorizedAccountAccess is returned when user is not authorized to access an account.
	ErrUnauthorizedAccountAccess = errors.New("unauthorized access to account")

	// ErrMissingAccountFields is returned when required account fields are empty.
	ErrMissingAccountFields = errors.New("account type and bank name are required")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound           AccountErrorCode = "ACC-010001"
	ErrCodeUnauthorizedAccountAccess AccountErrorCode = "ACC-010002"
	ErrCodeMissingAccountFields      AccountErrorCode = "ACC-010003"
)

// AccountError represents a account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
