package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// mockRecalcStore implements RecalcStore for testing
type mockRecalcStore struct {
	staff       []db.Staff
	changedIDs  map[string]bool
	refreshed   []string
	sinceValues []string

	getStaffErr error
	refreshErr  error
}

func (m *mockRecalcStore) GetVerifiedStaff(ctx context.Context) ([]db.Staff, error) {
	if m.getStaffErr != nil {
		return nil, m.getStaffErr
	}
	return m.staff, nil
}

func (m *mockRecalcStore) RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error) {
	if m.refreshErr != nil {
		return false, m.refreshErr
	}
	m.refreshed = append(m.refreshed, staffID)
	m.sinceValues = append(m.sinceValues, since)
	return m.changedIDs[staffID], nil
}

func TestRecalculateAllTotals_CountsChangedRows(t *testing.T) {
	store := &mockRecalcStore{
		staff: []db.Staff{
			{ID: "staff-a", StaffNumber: 101, Verified: true},
			{ID: "staff-b", StaffNumber: 102, Verified: true},
			{ID: "staff-c", StaffNumber: 103, Verified: true},
		},
		changedIDs: map[string]bool{"staff-a": true, "staff-c": true},
	}
	logger := zap.NewNop()

	updated, err := RecalculateAllTotals(context.Background(), store, logger, fairness.Config{})
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Equal(t, []string{"staff-a", "staff-b", "staff-c"}, store.refreshed)

	// Every refresh uses the same window start
	for _, since := range store.sinceValues {
		assert.Equal(t, store.sinceValues[0], since)
	}
}

func TestRecalculateAllTotals_Idempotent(t *testing.T) {
	store := &mockRecalcStore{
		staff: []db.Staff{{ID: "staff-a", StaffNumber: 101, Verified: true}},
	}
	logger := zap.NewNop()

	first, err := RecalculateAllTotals(context.Background(), store, logger, fairness.Config{})
	require.NoError(t, err)
	second, err := RecalculateAllTotals(context.Background(), store, logger, fairness.Config{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecalculateAllTotals_StaffFetchError(t *testing.T) {
	store := &mockRecalcStore{getStaffErr: errors.New("db down")}
	logger := zap.NewNop()

	_, err := RecalculateAllTotals(context.Background(), store, logger, fairness.Config{})
	require.Error(t, err)
}

func TestRecalculateAllTotals_RefreshError(t *testing.T) {
	store := &mockRecalcStore{
		staff:      []db.Staff{{ID: "staff-a", StaffNumber: 101, Verified: true}},
		refreshErr: errors.New("db timeout"),
	}
	logger := zap.NewNop()

	_, err := RecalculateAllTotals(context.Background(), store, logger, fairness.Config{})
	require.Error(t, err)
}
