package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"wastewise-pickup-demo/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// AddPoints credits points atomically and stamps the source. Returns
	// false when no user with that id exists.
	AddPoints(ctx context.Context, id string, points int, source string) (bool, error)
	// AddPointsTx is AddPoints inside a caller-managed transaction.
	AddPointsTx(ctx context.Context, tx *gorm.DB, id string, points int, source string) (bool, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) AddPoints(ctx context.Context, id string, points int, source string) (bool, error) {
	return r.AddPointsTx(ctx, r.db, id, points, source)
}

func (r *userRepoImpl) AddPointsTx(ctx context.Context, tx *gorm.DB, id string, points int, source string) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"points":             gorm.Expr("points + ?", points),
			"last_points_source": source,
			"last_points_update": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
