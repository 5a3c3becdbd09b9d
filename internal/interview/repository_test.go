package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var interviewColumns = []string{
	"id", "type", "status", "submitter_id", "category_id",
	"title", "description", "contact", "event_date", "created_date",
}

func TestRepository_GetByType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	created := time.Date(2023, time.October, 9, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(interviewColumns).
			AddRow(2, 1, 1, 2, 1, "interview2", "description2", "contact2", "30.02.2024", created).
			AddRow(1, 1, 1, 1, 1, "interview1", "description1", "contact1", "30.02.2024", created)

		mock.ExpectQuery("FROM interviews i WHERE i.type = \\$1 ORDER BY i.created_date DESC, i.id DESC LIMIT \\$2").
			WithArgs(1, 20).
			WillReturnRows(rows)

		res, err := repo.GetByType(context.Background(), 1, 20)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, Interview{
			ID: 2, Type: 1, Status: 1, SubmitterID: 2, CategoryID: 1,
			Title: "interview2", Description: "description2", Contact: "contact2",
			EventDate: "30.02.2024", CreatedDate: created,
		}, res[0])
		assert.Equal(t, 1, res[1].SubmitterID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("FROM interviews i").WillReturnError(errors.New("db error"))

		_, err := repo.GetByType(context.Background(), 1, 20)
		assert.ErrorContains(t, err, "query interviews")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
