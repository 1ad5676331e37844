package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// mockBidStore implements BidStore for testing
type mockBidStore struct {
	recall            *db.Recall
	staff             *db.Staff
	assigned          bool
	activeAssignments []db.Assignment
	upserted          []*db.Response

	getRecallErr error
	getStaffErr  error
	assignedErr  error
	getActiveErr error
	upsertErr    error
}

func (m *mockBidStore) GetStaff(ctx context.Context, id string) (*db.Staff, error) {
	if m.getStaffErr != nil {
		return nil, m.getStaffErr
	}
	if m.staff != nil {
		return m.staff, nil
	}
	return &db.Staff{ID: id, StaffNumber: 101, Verified: true}, nil
}

func (m *mockBidStore) GetRecall(ctx context.Context, id string) (*db.Recall, error) {
	if m.getRecallErr != nil {
		return nil, m.getRecallErr
	}
	return m.recall, nil
}

func (m *mockBidStore) RecallAssigned(ctx context.Context, recallID string) (bool, error) {
	if m.assignedErr != nil {
		return false, m.assignedErr
	}
	return m.assigned, nil
}

func (m *mockBidStore) GetActiveAssignmentsForStaff(ctx context.Context, staffID string) ([]db.Assignment, error) {
	if m.getActiveErr != nil {
		return nil, m.getActiveErr
	}
	return m.activeAssignments, nil
}

func (m *mockBidStore) UpsertResponse(ctx context.Context, response *db.Response) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, response)
	return nil
}

func TestSubmitBid_RecordsAvailability(t *testing.T) {
	store := &mockBidStore{recall: testRecall()}
	logger := zap.NewNop()

	result, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseAvailable)
	require.NoError(t, err)

	require.Len(t, store.upserted, 1)
	assert.Equal(t, "recall-1", store.upserted[0].RecallID)
	assert.Equal(t, "staff-a", store.upserted[0].StaffID)
	assert.Equal(t, db.ResponseAvailable, store.upserted[0].Response)
	assert.Empty(t, result.Conflicts)
}

func TestSubmitBid_AdvisoryConflictsReturned(t *testing.T) {
	recall := testRecall()
	store := &mockBidStore{
		recall: recall,
		activeAssignments: []db.Assignment{
			{
				RecallID:     "recall-2",
				StaffID:      "staff-a",
				RecallDate:   recall.Date,
				StartTime:    "12:00",
				EndTime:      "16:00",
				RecallStatus: db.RecallStatusActive,
			},
		},
	}
	logger := zap.NewNop()

	result, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseAvailable)
	require.NoError(t, err)

	// Conflicts are advisory; the bid is still recorded
	assert.Len(t, store.upserted, 1)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "12:00", result.Conflicts[0].Start)
}

func TestSubmitBid_OwnAssignmentNotAConflict(t *testing.T) {
	recall := testRecall()
	store := &mockBidStore{
		recall: recall,
		activeAssignments: []db.Assignment{
			{
				RecallID:     recall.ID,
				StaffID:      "staff-a",
				RecallDate:   recall.Date,
				StartTime:    recall.StartTime,
				EndTime:      recall.EndTime,
				RecallStatus: db.RecallStatusActive,
			},
		},
	}
	logger := zap.NewNop()

	result, err := SubmitBid(context.Background(), store, logger, recall.ID, "staff-a", db.ResponseAvailable)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
}

func TestSubmitBid_UnavailableSkipsConflictCheck(t *testing.T) {
	store := &mockBidStore{
		recall:       testRecall(),
		getActiveErr: assert.AnError,
	}
	logger := zap.NewNop()

	result, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseUnavailable)
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
}

func TestSubmitBid_ConflictLookupFailureRecordsNothing(t *testing.T) {
	store := &mockBidStore{
		recall:       testRecall(),
		getActiveErr: assert.AnError,
	}
	logger := zap.NewNop()

	_, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseAvailable)
	require.Error(t, err)
	assert.Empty(t, store.upserted)
}

func TestSubmitBid_InvalidResponse(t *testing.T) {
	store := &mockBidStore{recall: testRecall()}
	logger := zap.NewNop()

	_, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", "maybe")
	require.Error(t, err)
	assert.Empty(t, store.upserted)
}

func TestSubmitBid_AlreadyAssigned(t *testing.T) {
	store := &mockBidStore{recall: testRecall(), assigned: true}
	logger := zap.NewNop()

	_, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseAvailable)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrAlreadyAssigned)
	assert.Empty(t, store.upserted)
}

func TestSubmitBid_UnknownStaff(t *testing.T) {
	store := &mockBidStore{recall: testRecall(), getStaffErr: db.ErrNotFound}
	logger := zap.NewNop()

	_, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-z", db.ResponseAvailable)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Empty(t, store.upserted)
}

func TestSubmitBid_InactiveRecall(t *testing.T) {
	recall := testRecall()
	recall.Status = db.RecallStatusCancelled
	store := &mockBidStore{recall: recall}
	logger := zap.NewNop()

	_, err := SubmitBid(context.Background(), store, logger, "recall-1", "staff-a", db.ResponseAvailable)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
