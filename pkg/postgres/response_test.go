package postgres

import (
	"context"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

func TestUpsertResponse(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO recall_response").
		WithArgs("recall-1", "staff-1", db.ResponseAvailable).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := d.UpsertResponse(context.Background(), &db.Response{
		RecallID: "recall-1",
		StaffID:  "staff-1",
		Response: db.ResponseAvailable,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailableResponderIDs(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`rr.response = 'available'`)).
		WithArgs("recall-1").
		WillReturnRows(pgxmock.NewRows([]string{"staff_id"}).
			AddRow("staff-1").
			AddRow("staff-2"))

	ids, err := d.GetAvailableResponderIDs(context.Background(), "recall-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"staff-1", "staff-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailableResponderIDs_NoResponses(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`rr.response = 'available'`)).
		WithArgs("recall-1").
		WillReturnRows(pgxmock.NewRows([]string{"staff_id"}))

	ids, err := d.GetAvailableResponderIDs(context.Background(), "recall-1")

	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
