package service

import (
	"context"

	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/repository"
)

type ContributionService interface {
	// Last returns the user's most recent contribution, or nil when none
	// has been recorded yet.
	Last(ctx context.Context, userID string) (*model.Contribution, error)
}

type contributionServiceImpl struct {
	contributionRepo repository.ContributionRepository
}

func NewContributionService(contributionRepo repository.ContributionRepository) ContributionService {
	return &contributionServiceImpl{
		contributionRepo: contributionRepo,
	}
}

func (s *contributionServiceImpl) Last(ctx context.Context, userID string) (*model.Contribution, error) {
	return s.contributionRepo.FindByUserID(ctx, userID)
}
