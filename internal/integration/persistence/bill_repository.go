package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// Create creates a new bill in the database.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(model.BillFromEntity(bill)).Error
}

// FindByID retrieves a bill by its ID.
func (r *billRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var billModel model.BillModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByUserID retrieves all bills of a user ordered by due date.
func (r *billRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBillEntities(billModels), nil
}

// FindDueBetween retrieves the bills of every user due in [from, to].
func (r *billRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Bill, error) {
	var billModels []model.BillModel
	result := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Order("user_id").
		Order("due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBillEntities(billModels), nil
}

// Update updates an existing bill in the database.
func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Save(model.BillFromEntity(bill)).Error
}

// Delete removes a bill from the database.
func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BillModel{}, "id = ?", id).Error
}

func toBillEntities(billModels []model.BillModel) []*entity.Bill {
	bills := make([]*entity.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills
}
