package interview

import (
	"context"
	"database/sql"
	"fmt"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByType(ctx context.Context, interviewType, limit int) ([]Interview, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByType(ctx context.Context, interviewType, limit int) ([]Interview, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByType"),
		zap.Int("type", interviewType),
		zap.Int("limit", limit),
	)

	query := `
		SELECT i.id, i.type, i.status, i.submitter_id, i.category_id,
			i.title, i.description, i.contact, i.event_date, i.created_date
		FROM interviews i
		WHERE i.type = $1
		ORDER BY i.created_date DESC, i.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, interviewType, limit)
	if err != nil {
		log.Error("DB query failed GetByType", zap.Error(err))
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var i Interview
		err := rows.Scan(
			&i.ID, &i.Type, &i.Status, &i.SubmitterID, &i.CategoryID,
			&i.Title, &i.Description, &i.Contact, &i.EventDate, &i.CreatedDate,
		)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		interviews = append(interviews, i)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("GetByType success", zap.Int("count", len(interviews)))
	return interviews, nil
}
