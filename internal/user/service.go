package user

import (
	"context"
	"errors"

	"checkdev-site/internal/logger"
	"checkdev-site/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetUserInfo(ctx context.Context, id int) (utils.Optional[UserInfo], error)
	Login(ctx context.Context, email, password string) (string, UserInfo, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

// GetUserInfo returns the user's public info; an unknown id is absent.
func (s *service) GetUserInfo(ctx context.Context, id int) (utils.Optional[UserInfo], error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		logger.FromCtx(ctx).Warn("token refers to unknown user", zap.Int("lookup_id", id))
		return utils.None[UserInfo](), nil
	}
	if err != nil {
		return utils.None[UserInfo](), err
	}
	return utils.Some(u.Info()), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, UserInfo, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login failed: unknown email")
		return "", UserInfo{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("login failed", zap.Error(err))
		return "", UserInfo{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login failed: wrong password")
		return "", UserInfo{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(s.jwtSecret, u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", UserInfo{}, err
	}

	log.Info("login succeeded", zap.Int("user_id", u.ID))
	return token, u.Info(), nil
}
