package profile

import (
	"context"

	"checkdev-site/internal/utils"
)

type Service interface {
	GetProfileByID(ctx context.Context, id int) (utils.Optional[Profile], error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfileByID(ctx context.Context, id int) (utils.Optional[Profile], error) {
	if id <= 0 {
		return utils.None[Profile](), nil
	}
	return s.repo.GetByID(ctx, id)
}
