package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidCurrentAmount is returned when the saved amount is negative.
	ErrInvalidCurrentAmount = errors.New("invalid current amount")

	// ErrInvalidDeadline is returned when the deadline is missing or malformed.
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount    GoalErrorCode = "GOL-010003"
	ErrCodeInvalidCurrentAmount   GoalErrorCode = "GOL-010004"
	ErrCodeInvalidDeadline        GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010008"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
