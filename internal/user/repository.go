package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"checkdev-site/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindByID(ctx context.Context, id int) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectUser = `SELECT u.id, u.username, u.email, u.password, u.roles FROM users u`

func (r *repository) FindByID(ctx context.Context, id int) (User, error) {
	return r.findOne(ctx, "FindByID", selectUser+" WHERE u.id = $1", id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, "FindByEmail", selectUser+" WHERE u.email = $1", email)
}

func (r *repository) findOne(ctx context.Context, method, query string, arg any) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	var u User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, pq.Array(&u.Roles))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		log.Error("db: failed to load user", zap.Error(err))
		return User{}, fmt.Errorf("load user: %w", err)
	}

	return u, nil
}
