package bill

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// DeleteBillInput represents the input for bill deletion.
type DeleteBillInput struct {
	BillID uuid.UUID
	UserID uuid.UUID
}

// DeleteBillOutput represents the output of bill deletion.
type DeleteBillOutput struct {
	Success bool
}

// DeleteBillUseCase handles bill deletion logic.
type DeleteBillUseCase struct {
	billRepo adapter.BillRepository
	storage  adapter.FileStorage
}

// NewDeleteBillUseCase creates a new DeleteBillUseCase instance.
func NewDeleteBillUseCase(billRepo adapter.BillRepository, storage adapter.FileStorage) *DeleteBillUseCase {
	return &DeleteBillUseCase{
		billRepo: billRepo,
		storage:  storage,
	}
}

// Execute performs the bill deletion and removes its logo.
func (uc *DeleteBillUseCase) Execute(ctx context.Context, input DeleteBillInput) (*DeleteBillOutput, error) {
	bill, err := findOwnedBill(ctx, uc.billRepo, input.BillID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := uc.billRepo.Delete(ctx, input.BillID); err != nil {
		return nil, fmt.Errorf("failed to delete bill: %w", err)
	}

	removeLogo(ctx, uc.storage, bill.Logo)

	return &DeleteBillOutput{
		Success: true,
	}, nil
}
