package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUnauthorizedTransactionAccess is returned when user is not authorized to access a transaction.
	ErrUnauthorizedTransactionAccess = errors.New("unauthorized access to transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrTransactionAccountNotFound is returned when the referenced account does not exist for the user.
	ErrTransactionAccountNotFound = errors.New("account not found")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound        TransactionErrorCode = "TXN-010004"
	ErrCodeUnauthorizedTransaction    TransactionErrorCode = "TXN-010005"
	ErrCodeTransactionAccountNotFound TransactionErrorCode = "TXN-010006"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010010"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
