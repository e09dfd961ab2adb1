package repository

import (
	"context"

	"gorm.io/gorm"

	"wastewise-pickup-demo/internal/model"
)

type LocationRepository interface {
	FindAll(ctx context.Context) ([]*model.Location, error)
	FindByCategory(ctx context.Context, category string) ([]*model.Location, error)
	FindByID(ctx context.Context, id uint) (*model.Location, error)
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, locations []*model.Location) error
}

type locationRepoImpl struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepoImpl{
		db: db,
	}
}

func (r *locationRepoImpl) FindAll(ctx context.Context) ([]*model.Location, error) {
	var locations []*model.Location
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&locations).Error

	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *locationRepoImpl) FindByCategory(ctx context.Context, category string) ([]*model.Location, error) {
	var locations []*model.Location
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&locations).Error

	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *locationRepoImpl) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	var location model.Location
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&location).Error

	if err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *locationRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Location{}).Count(&count).Error

	return count, err
}

func (r *locationRepoImpl) CreateMany(ctx context.Context, locations []*model.Location) error {
	return r.db.WithContext(ctx).Create(&locations).Error
}
