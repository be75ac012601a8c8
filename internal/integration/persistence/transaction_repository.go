package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithAccounts stores the transaction and the account balances atomically.
func (r *transactionRepository) CreateWithAccounts(ctx context.Context, transaction *entity.Transaction, accounts ...*entity.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return saveBalances(tx, accounts)
	})
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByUserID retrieves all transactions of a user, newest first.
func (r *transactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// UpdateWithAccounts updates the transaction and the account balances atomically.
func (r *transactionRepository) UpdateWithAccounts(ctx context.Context, transaction *entity.Transaction, accounts ...*entity.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return saveBalances(tx, accounts)
	})
}

// DeleteWithAccounts removes the transaction and stores the account balances atomically.
func (r *transactionRepository) DeleteWithAccounts(ctx context.Context, id uuid.UUID, accounts ...*entity.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.TransactionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return saveBalances(tx, accounts)
	})
}

// saveBalances writes only the balance columns so concurrent edits of other account fields survive.
func saveBalances(tx *gorm.DB, accounts []*entity.Account) error {
	for _, account := range accounts {
		result := tx.Model(&model.AccountModel{}).
			Where("id = ?", account.ID).
			Updates(map[string]any{
				"balance":    account.Balance,
				"updated_at": account.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update balance of account %s: %w", account.ID, result.Error)
		}
	}
	return nil
}
