package topic

import (
	"context"
	"database/sql"
	"fmt"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByCategory(ctx context.Context, categoryID int) ([]Topic, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCategory(ctx context.Context, categoryID int) ([]Topic, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByCategory"),
		zap.Int("category_id", categoryID),
	)

	query := `
		SELECT t.id, t.name, t.category_id, t.position
		FROM topics t
		WHERE t.category_id = $1
		ORDER BY t.position ASC, t.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		log.Error("DB query failed GetByCategory", zap.Error(err))
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID, &t.Position); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return topics, nil
}
