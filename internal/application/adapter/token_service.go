package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed session token and its expiry.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a session token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	ExpiresAt time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// GenerateSessionToken issues a signed session token for a user.
	GenerateSessionToken(ctx context.Context, userID uuid.UUID, email, role string) (*SessionToken, error)

	// ValidateSessionToken validates a session token and returns its claims.
	ValidateSessionToken(ctx context.Context, token string) (*TokenClaims, error)
}

// PasswordResetToken represents a password reset token.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService defines the interface for password reset token operations.
type PasswordResetTokenService interface {
	// GenerateResetToken generates a new password reset token.
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// ValidateResetToken validates a password reset token.
	ValidateResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// InvalidateResetToken invalidates a password reset token after use.
	InvalidateResetToken(ctx context.Context, token string) error
}
