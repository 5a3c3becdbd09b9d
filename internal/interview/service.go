package interview

import (
	"context"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

const defaultLimit = 20

type Service interface {
	GetByType(ctx context.Context, interviewType int) ([]Interview, error)
}

type service struct {
	repo  Repository
	limit int
}

func NewService(repo Repository, limit int) Service {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &service{repo: repo, limit: limit}
}

// GetByType returns the newest interviews of the given type.
func (s *service) GetByType(ctx context.Context, interviewType int) ([]Interview, error) {
	interviews, err := s.repo.GetByType(ctx, interviewType, s.limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get interviews",
			zap.String("layer", "service"),
			zap.Int("type", interviewType),
			zap.Error(err),
		)
		return nil, err
	}

	if interviews == nil {
		interviews = []Interview{}
	}
	return interviews, nil
}
