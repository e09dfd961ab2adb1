package service

import (
	"context"
	"log"
	"time"

	"wastewise-pickup-demo/internal/checkout"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/repository"
)

// userRewards binds the checkout reward sink to one authenticated user.
type userRewards struct {
	userID           string
	userRepo         repository.UserRepository
	contributionRepo repository.ContributionRepository
}

func NewUserRewards(
	userID string,
	userRepo repository.UserRepository,
	contributionRepo repository.ContributionRepository,
) checkout.Rewards {
	return &userRewards{
		userID:           userID,
		userRepo:         userRepo,
		contributionRepo: contributionRepo,
	}
}

func (r *userRewards) AwardPoints(ctx context.Context, points int, source string) bool {
	ok, err := r.userRepo.AddPoints(ctx, r.userID, points, source)
	if err != nil {
		log.Printf("award points to %s: %v", r.userID, err)
		return false
	}
	if !ok {
		log.Printf("user %s not found, points not saved", r.userID)
	}

	return ok
}

func (r *userRewards) RecordContribution(ctx context.Context, c checkout.Contribution) error {
	return r.contributionRepo.Upsert(ctx, &model.Contribution{
		UserID:       r.userID,
		WasteType:    c.WasteType,
		Weight:       c.Weight,
		Points:       c.Points,
		CO2Saved:     c.CO2Saved,
		LocationName: c.LocationName,
		RecordedAt:   time.Now(),
	})
}
