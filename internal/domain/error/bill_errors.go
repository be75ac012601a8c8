package error

import "errors"

// Bill domain errors.
var (
	// ErrBillNotFound is returned when a bill is not found in the system.
	ErrBillNotFound = errors.New("bill not found")

	// ErrUnauthorizedBillAccess is returned when user is not authorized to access a bill.
	ErrUnauthorizedBillAccess = errors.New("unauthorized access to bill")

	// ErrInvalidBillAmount is returned when the bill amount is zero or negative.
	ErrInvalidBillAmount = errors.New("invalid bill amount")

	// ErrInvalidDueDate is returned when the due date is missing or malformed.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrInvalidLogo is returned when the uploaded logo is not an accepted image.
	ErrInvalidLogo = errors.New("invalid logo file")
)

// BillErrorCode defines error codes for bill errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillErrorCode string

const (
	ErrCodeBillNotFound           BillErrorCode = "BIL-010001"
	ErrCodeUnauthorizedBillAccess BillErrorCode = "BIL-010002"
	ErrCodeInvalidBillAmount      BillErrorCode = "BIL-010003"
	ErrCodeInvalidDueDate         BillErrorCode = "BIL-010004"
	ErrCodeInvalidLogo            BillErrorCode = "BIL-010005"
	ErrCodeMissingBillFields      BillErrorCode = "BIL-010006"
)

// BillError represents a bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
