package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"checkdev-site/internal/logger"
	"checkdev-site/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id int) (utils.Optional[Profile], error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetByID fetches a profile. A missing row is reported as an absent value.
func (r *repository) GetByID(ctx context.Context, id int) (utils.Optional[Profile], error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Int("profile_id", id),
	)

	query := `
		SELECT p.id, p.first_name, COALESCE(p.middle_name, ''), p.topic_id, p.birth_date, p.created_date
		FROM profiles p
		WHERE p.id = $1
	`

	var p Profile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.MiddleName, &p.TopicID, &p.BirthDate, &p.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("profile not found")
			return utils.None[Profile](), nil
		}
		log.Error("failed to scan profile", zap.Error(err))
		return utils.None[Profile](), fmt.Errorf("get profile %d: %w", id, err)
	}

	return utils.Some(p), nil
}
