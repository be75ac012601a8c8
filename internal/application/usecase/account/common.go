// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// FindOwnedAccount loads an account and checks that it belongs to the user.
func FindOwnedAccount(ctx context.Context, repo adapter.AccountRepository, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if account.UserID != userID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeUnauthorizedAccountAccess,
			"not authorized to access this account",
			domainerror.ErrUnauthorizedAccountAccess,
		)
	}

	return account, nil
}
