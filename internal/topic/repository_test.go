package topic

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "category_id", "position"}).
			AddRow(1, "topic1", 3, 1).
			AddRow(4, "topic4", 3, 2)

		mock.ExpectQuery("SELECT t.id, t.name, t.category_id, t.position FROM topics t WHERE t.category_id = \\$1").
			WithArgs(3).
			WillReturnRows(rows)

		res, err := repo.GetByCategory(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, []Topic{
			{ID: 1, Name: "topic1", CategoryID: 3, Position: 1},
			{ID: 4, Name: "topic4", CategoryID: 3, Position: 2},
		}, res)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("FROM topics t").WithArgs(3).WillReturnError(errors.New("db error"))

		_, err := repo.GetByCategory(context.Background(), 3)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
