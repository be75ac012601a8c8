package bill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// UpdateBillInput represents the input for bill update. Nil fields are left unchanged.
type UpdateBillInput struct {
	BillID         uuid.UUID
	UserID         uuid.UUID
	Vendor         *string
	Plan           *string
	Description    *string
	DueDate        *time.Time
	LastChargeDate *time.Time
	Amount         *decimal.Decimal
	Logo           *adapter.FileUpload // Replaces the stored logo when set
}

// UpdateBillOutput represents the output of bill update.
type UpdateBillOutput struct {
	Bill *entity.Bill
}

// UpdateBillUseCase handles bill update logic.
type UpdateBillUseCase struct {
	billRepo adapter.BillRepository
	storage  adapter.FileStorage
}

// NewUpdateBillUseCase creates a new UpdateBillUseCase instance.
func NewUpdateBillUseCase(billRepo adapter.BillRepository, storage adapter.FileStorage) *UpdateBillUseCase {
	return &UpdateBillUseCase{
		billRepo: billRepo,
		storage:  storage,
	}
}

// Execute performs the bill update.
func (uc *UpdateBillUseCase) Execute(ctx context.Context, input UpdateBillInput) (*UpdateBillOutput, error) {
	bill, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Vendor != nil {
		vendor := strings.TrimSpace(*input.Vendor)
		if vendor == "" {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeMissingBillFields,
				"vendor cannot be empty",
				nil,
			)
		}
		bill.Vendor = vendor
	}
	if input.Plan != nil {
		bill.Plan = strings.TrimSpace(*input.Plan)
	}
	if input.Description != nil {
		bill.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeInvalidBillAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidBillAmount,
			)
		}
		bill.Amount = *input.Amount
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeInvalidDueDate,
				"due date cannot be empty",
				domainerror.ErrInvalidDueDate,
			)
		}
		bill.DueDate = input.DueDate.UTC()
	}
	if input.LastChargeDate != nil {
		last := input.LastChargeDate.UTC()
		bill.LastChargeDate = &last
	}

	previousLogo := ""
	if input.Logo != nil {
		path, err := saveLogo(ctx, uc.storage, input.Logo)
		if err != nil {
			return nil, err
		}
		previousLogo, bill.Logo = bill.Logo, path
	}

	bill.UpdatedAt = time.Now().UTC()

	if err := uc.billRepo.Update(ctx, bill); err != nil {
		if input.Logo != nil {
			removeLogo(ctx, uc.storage, bill.Logo)
		}
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	removeLogo(ctx, uc.storage, previousLogo)

	return &UpdateBillOutput{
		Bill: bill,
	}, nil
}
