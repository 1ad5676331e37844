package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// mockArchiveStore implements ArchiveStore for testing
type mockArchiveStore struct {
	counts       *db.ArchiveCounts
	staff        []db.Staff
	archivedFrom string
	refreshed    []string
	archiveErr   error
	getStaffErr  error
	refreshErr   error
}

func (m *mockArchiveStore) ArchiveRecallsBefore(ctx context.Context, cutoff string) (*db.ArchiveCounts, error) {
	if m.archiveErr != nil {
		return nil, m.archiveErr
	}
	m.archivedFrom = cutoff
	return m.counts, nil
}

func (m *mockArchiveStore) GetVerifiedStaff(ctx context.Context) ([]db.Staff, error) {
	if m.getStaffErr != nil {
		return nil, m.getStaffErr
	}
	return m.staff, nil
}

func (m *mockArchiveStore) RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error) {
	if m.refreshErr != nil {
		return false, m.refreshErr
	}
	m.refreshed = append(m.refreshed, staffID)
	return true, nil
}

func TestArchiveOldRecalls_ArchivesAndRecalculates(t *testing.T) {
	store := &mockArchiveStore{
		counts: &db.ArchiveCounts{RecallsArchived: 12, AssignmentsArchived: 10, ResponsesDeleted: 40},
		staff:  []db.Staff{{ID: "staff-a", StaffNumber: 101, Verified: true}},
	}
	logger := zap.NewNop()

	counts, err := ArchiveOldRecalls(context.Background(), store, logger, fairness.Config{}, 24)
	require.NoError(t, err)

	assert.Equal(t, 12, counts.RecallsArchived)
	assert.Equal(t, 10, counts.AssignmentsArchived)

	expectedCutoff := time.Now().AddDate(0, -24, 0).Format("2006-01-02")
	assert.Equal(t, expectedCutoff, store.archivedFrom)

	// Totals recomputed after archival
	assert.Equal(t, []string{"staff-a"}, store.refreshed)
}

func TestArchiveOldRecalls_InvalidMonths(t *testing.T) {
	store := &mockArchiveStore{}
	logger := zap.NewNop()

	_, err := ArchiveOldRecalls(context.Background(), store, logger, fairness.Config{}, 0)
	require.Error(t, err)
	assert.Empty(t, store.archivedFrom)
}

func TestArchiveOldRecalls_ArchiveError(t *testing.T) {
	store := &mockArchiveStore{archiveErr: errors.New("db down")}
	logger := zap.NewNop()

	_, err := ArchiveOldRecalls(context.Background(), store, logger, fairness.Config{}, 24)
	require.Error(t, err)
}

func TestArchiveOldRecalls_RecalcFailureReportsCounts(t *testing.T) {
	store := &mockArchiveStore{
		counts:      &db.ArchiveCounts{RecallsArchived: 3},
		getStaffErr: errors.New("db down"),
	}
	logger := zap.NewNop()

	counts, err := ArchiveOldRecalls(context.Background(), store, logger, fairness.Config{}, 24)
	require.Error(t, err)

	// The archival itself committed; counts still come back
	require.NotNil(t, counts)
	assert.Equal(t, 3, counts.RecallsArchived)
}
