package category

import (
	"context"
	"database/sql"
	"fmt"

	"checkdev-site/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetMostPopular(ctx context.Context, limit int) ([]Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetMostPopular returns categories ranked by how many topics they hold.
func (r *repository) GetMostPopular(ctx context.Context, limit int) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetMostPopular"),
		zap.Int("limit", limit),
	)

	query := `
		SELECT c.id, c.name, COUNT(t.id) AS total
		FROM categories c
		LEFT JOIN topics t ON t.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.name ASC
		LIMIT $1
	`

	log.Debug("Executing GetMostPopular query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("DB query failed GetMostPopular", zap.Error(err))
		return nil, fmt.Errorf("query most popular categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0, limit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Total); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}
