package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wastewise-pickup-demo/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	Save(ctx context.Context, t *model.Transaction) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)
	// MarkSettled transitions a pending transaction to success and returns
	// the updated record. gorm.ErrRecordNotFound when there is nothing
	// pending to settle, which makes settlement idempotent.
	MarkSettled(ctx context.Context, tx *gorm.DB, orderID string) (*model.Transaction, error)
	MarkFailed(ctx context.Context, tx *gorm.DB, orderID string) error
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{
		db: db,
	}
}

func (r *transactionRepoImpl) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepoImpl) Save(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *transactionRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&t).Error

	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *transactionRepoImpl) MarkSettled(ctx context.Context, tx *gorm.DB, orderID string) (*model.Transaction, error) {
	var t model.Transaction
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Transaction{}).
			Where("order_id = ? AND status = ?", orderID, "pending").
			Updates(map[string]interface{}{
				"status":     "success",
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("order_id = ?", orderID).First(&t).Error
	})

	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *transactionRepoImpl) MarkFailed(ctx context.Context, tx *gorm.DB, orderID string) error {
	return tx.WithContext(ctx).Model(&model.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, "pending").
		Updates(map[string]interface{}{
			"status":     "failure",
			"updated_at": time.Now(),
		}).Error
}
