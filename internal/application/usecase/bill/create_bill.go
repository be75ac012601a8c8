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

// CreateBillInput represents the input for bill creation.
type CreateBillInput struct {
	UserID         uuid.UUID
	Vendor         string
	Plan           string
	Description    string
	DueDate        time.Time
	LastChargeDate *time.Time
	Amount         decimal.Decimal
	Logo           *adapter.FileUpload // Optional
}

// CreateBillOutput represents the output of bill creation.
type CreateBillOutput struct {
	Bill *entity.Bill
}

// CreateBillUseCase handles bill creation logic.
type CreateBillUseCase struct {
	billRepo adapter.BillRepository
	storage  adapter.FileStorage
}

// NewCreateBillUseCase creates a new CreateBillUseCase instance.
func NewCreateBillUseCase(billRepo adapter.BillRepository, storage adapter.FileStorage) *CreateBillUseCase {
	return &CreateBillUseCase{
		billRepo: billRepo,
		storage:  storage,
	}
}

// Execute performs the bill creation.
func (uc *CreateBillUseCase) Execute(ctx context.Context, input CreateBillInput) (*CreateBillOutput, error) {
	vendor := strings.TrimSpace(input.Vendor)
	if vendor == "" {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeMissingBillFields,
			"vendor is required",
			nil,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidBillAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBillAmount,
		)
	}

	if input.DueDate.IsZero() {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeInvalidDueDate,
			"due date is required",
			domainerror.ErrInvalidDueDate,
		)
	}

	bill := entity.NewBill(input.UserID, vendor, strings.TrimSpace(input.Plan), input.DueDate, input.LastChargeDate, input.Amount)
	bill.Description = strings.TrimSpace(input.Description)

	if input.Logo != nil {
		path, err := saveLogo(ctx, uc.storage, input.Logo)
		if err != nil {
			return nil, err
		}
		bill.Logo = path
	}

	if err := uc.billRepo.Create(ctx, bill); err != nil {
		removeLogo(ctx, uc.storage, bill.Logo)
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return &CreateBillOutput{
		Bill: bill,
	}, nil
}
