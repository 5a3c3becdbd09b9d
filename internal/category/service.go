package category

import (
	"context"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

const defaultPopularLimit = 6

// Service exposes read access to categories.
type Service interface {
	GetMostPopular(ctx context.Context) ([]Category, error)
}

type service struct {
	repo  Repository
	limit int
}

// NewService creates a category service returning at most limit popular
// categories. A non-positive limit falls back to the default.
func NewService(repo Repository, limit int) Service {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return &service{repo: repo, limit: limit}
}

func (s *service) GetMostPopular(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetMostPopular"),
	)

	categories, err := s.repo.GetMostPopular(ctx, s.limit)
	if err != nil {
		log.Error("failed to get most popular categories", zap.Error(err))
		return nil, err
	}

	if categories == nil {
		categories = []Category{}
	}

	log.Debug("GetMostPopular success", zap.Int("count", len(categories)))
	return categories, nil
}
