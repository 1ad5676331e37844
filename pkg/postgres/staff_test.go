package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func TestScanStaff(t *testing.T) {
	lastRecall := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	row := stubRow{scanFn: func(dest ...any) error {
		require.Len(t, dest, 9)
		*(dest[0].(*string)) = "staff-1"
		*(dest[1].(*int)) = 71452
		*(dest[2].(*string)) = "Dana"
		*(dest[3].(*string)) = "Hooper"
		*(dest[4].(*string)) = "dana@example.com"
		*(dest[5].(*string)) = "Ilford"
		*(dest[6].(*bool)) = true
		*(dest[7].(*float64)) = 12.5
		*(dest[8].(**time.Time)) = &lastRecall
		return nil
	}}

	staff, err := scanStaff(row)

	require.NoError(t, err)
	assert.Equal(t, 71452, staff.StaffNumber)
	assert.Equal(t, 12.5, staff.TotalRecallHours)
	assert.Equal(t, "2026-07-15", staff.LastRecallDate)
}

func TestScanStaff_NeverRecalled(t *testing.T) {
	row := stubRow{scanFn: func(dest ...any) error {
		*(dest[0].(*string)) = "staff-1"
		return nil
	}}

	staff, err := scanStaff(row)

	require.NoError(t, err)
	assert.Empty(t, staff.LastRecallDate)
}

func TestGetStaff_NotFound(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery("FROM staff").
		WithArgs("staff-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := d.GetStaff(context.Background(), "staff-missing")

	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVerifiedStaff(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE verified = TRUE`)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "staff_number", "first_name", "last_name", "email", "station",
			"verified", "total_recall_hours", "last_recall_date",
		}).
			AddRow("staff-1", 71452, "Dana", "Hooper", "dana@example.com", "Ilford", true, 12.5, nil).
			AddRow("staff-2", 71453, "Rhys", "Okafor", "rhys@example.com", "Ilford", true, 0.0, nil))

	members, err := d.GetVerifiedStaff(context.Background())

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, 71452, members[0].StaffNumber)
	assert.Equal(t, 71453, members[1].StaffNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertStaff(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO staff").
		WithArgs("staff-1", 71452, "Dana", "Hooper", "dana@example.com", "", false, 0.0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := d.InsertStaff(context.Background(), &db.Staff{
		ID:          "staff-1",
		StaffNumber: 71452,
		FirstName:   "Dana",
		LastName:    "Hooper",
		Email:       "dana@example.com",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshStaffTotals(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("UPDATE staff SET").
		WithArgs("staff-1", "2024-08-29").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := d.RefreshStaffTotals(context.Background(), "staff-1", "2024-08-29")

	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshStaffTotals_UnknownStaff(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("UPDATE staff SET").
		WithArgs("staff-missing", "2024-08-29").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := d.RefreshStaffTotals(context.Background(), "staff-missing", "2024-08-29")

	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanStaff_PropagatesScanError(t *testing.T) {
	scanErr := errors.New("scan failed")
	row := stubRow{scanFn: func(dest ...any) error {
		return scanErr
	}}

	_, err := scanStaff(row)

	assert.ErrorIs(t, err, scanErr)
}
