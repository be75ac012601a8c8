package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// ForgotPasswordMessage is returned for every well-formed request, whether or not the email exists.
const ForgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput represents the input for forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase handles forgot password logic.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        strings.TrimRight(appBaseURL, "/"),
	}
}

// Execute performs the forgot password request.
// Always returns success to prevent email enumeration.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := NormalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	output := &ForgotPasswordOutput{Message: ForgotPasswordMessage}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Forgot password requested for non-existent email", "email", email)
		return output, nil
	}

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to generate reset token", "error", err, "user_id", user.ID)
		return output, nil
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", uc.appBaseURL, resetToken.Token)

	err = uc.emailService.SendPasswordResetEmail(ctx, adapter.PasswordResetEmailInput{
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  resetURL,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		slog.Error("Failed to send password reset email", "error", err, "user_id", user.ID)
	} else {
		slog.Info("Password reset email sent", "user_id", user.ID)
	}

	return output, nil
}
