package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// GetBillInput represents the input for getting a bill.
type GetBillInput struct {
	BillID uuid.UUID
	UserID uuid.UUID
}

// GetBillOutput represents the output of getting a bill.
type GetBillOutput struct {
	Bill *entity.Bill
}

// GetBillUseCase handles getting a bill by ID.
type GetBillUseCase struct {
	billRepo adapter.BillRepository
}

// NewGetBillUseCase creates a new GetBillUseCase instance.
func NewGetBillUseCase(billRepo adapter.BillRepository) *GetBillUseCase {
	return &GetBillUseCase{
		billRepo: billRepo,
	}
}

// Execute performs the bill retrieval.
func (uc *GetBillUseCase) Execute(ctx context.Context, input GetBillInput) (*GetBillOutput, error) {
	bill, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetBillOutput{
		Bill: bill,
	}, nil
}

// ListBillsInput represents the input for listing bills.
type ListBillsInput struct {
	UserID uuid.UUID
}

// ListBillsOutput represents the output of listing bills.
type ListBillsOutput struct {
	Bills []*entity.Bill
}

// ListBillsUseCase handles listing the bills of a user.
type ListBillsUseCase struct {
	billRepo adapter.BillRepository
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(billRepo adapter.BillRepository) *ListBillsUseCase {
	return &ListBillsUseCase{
		billRepo: billRepo,
	}
}

// Execute performs the bill listing.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	bills, err := uc.billRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return &ListBillsOutput{
		Bills: bills,
	}, nil
}
