package topic

import (
	"context"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetByCategory(ctx context.Context, categoryID int) ([]Topic, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetByCategory lists the topics of a category in display order.
func (s *service) GetByCategory(ctx context.Context, categoryID int) ([]Topic, error) {
	if categoryID <= 0 {
		return nil, ErrInvalidCategoryID
	}

	topics, err := s.repo.GetByCategory(ctx, categoryID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get topics",
			zap.String("layer", "service"),
			zap.Int("category_id", categoryID),
			zap.Error(err),
		)
		return nil, err
	}

	if topics == nil {
		topics = []Topic{}
	}
	return topics, nil
}
