package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wastewise-pickup-demo/internal/model"
)

type ContributionRepository interface {
	// Upsert overwrites the user's last-contribution snapshot. At most one
	// row per user is kept.
	Upsert(ctx context.Context, contribution *model.Contribution) error
	// UpsertTx is Upsert inside a caller-managed transaction.
	UpsertTx(ctx context.Context, tx *gorm.DB, contribution *model.Contribution) error
	FindByUserID(ctx context.Context, userID string) (*model.Contribution, error)
}

type contributionRepoImpl struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepoImpl{
		db: db,
	}
}

func (r *contributionRepoImpl) Upsert(ctx context.Context, contribution *model.Contribution) error {
	return r.UpsertTx(ctx, r.db, contribution)
}

func (r *contributionRepoImpl) UpsertTx(ctx context.Context, tx *gorm.DB, contribution *model.Contribution) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"waste_type", "weight", "points", "co2_saved", "location_name", "recorded_at",
		}),
	}).Create(contribution).Error
}

func (r *contributionRepoImpl) FindByUserID(ctx context.Context, userID string) (*model.Contribution, error) {
	var contribution model.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&contribution).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &contribution, nil
}
