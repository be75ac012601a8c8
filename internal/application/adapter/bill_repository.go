package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// BillRepository defines the interface for bill persistence operations.
type BillRepository interface {
	// Create creates a new bill in the database.
	Create(ctx context.Context, bill *entity.Bill) error

	// FindByID retrieves a bill by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)

	// FindByUserID retrieves all bills for a user ordered by due date.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error)

	// FindDueBetween retrieves the bills of every user due in [from, to].
	FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Bill, error)

	// Update updates an existing bill.
	Update(ctx context.Context, bill *entity.Bill) error

	// Delete removes a bill from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
