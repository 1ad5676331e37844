package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

func TestGetRecall(t *testing.T) {
	d, mock := newMockDB(t)

	date := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	createdBy := "admin-1"

	mock.ExpectQuery("FROM recall").
		WithArgs("recall-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "date", "start_time", "end_time", "suburb", "station",
			"description", "status", "created_by",
		}).AddRow("recall-1", date, "08:00", "12:00", "Ilford", "Station 12",
			"Pump out of service", db.RecallStatusActive, &createdBy))

	recall, err := d.GetRecall(context.Background(), "recall-1")

	require.NoError(t, err)
	assert.Equal(t, "2026-08-02", recall.Date)
	assert.Equal(t, "08:00", recall.StartTime)
	assert.Equal(t, "admin-1", recall.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecall_NotFound(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery("FROM recall").
		WithArgs("recall-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := d.GetRecall(context.Background(), "recall-missing")

	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRecall_DefaultsToActive(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO recall").
		WithArgs("recall-1", "2026-08-02", "08:00", "12:00", "Ilford", "Station 12",
			"Pump out of service", db.RecallStatusActive, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := d.InsertRecall(context.Background(), &db.Recall{
		ID:          "recall-1",
		Date:        "2026-08-02",
		StartTime:   "08:00",
		EndTime:     "12:00",
		Suburb:      "Ilford",
		Station:     "Station 12",
		Description: "Pump out of service",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecallAssigned(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery(assignmentExistsStmt).
		WithArgs("recall-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	assigned, err := d.RecallAssigned(context.Background(), "recall-1")

	require.NoError(t, err)
	assert.True(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
