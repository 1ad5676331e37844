package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// mockReportStore implements ReportStore for testing
type mockReportStore struct {
	stats    []db.FairnessStat
	from, to string
	statsErr error
}

func (m *mockReportStore) GetFairnessStats(ctx context.Context, from, to string) ([]db.FairnessStat, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	m.from = from
	m.to = to
	return m.stats, nil
}

func TestFairnessReport_ExplicitRange(t *testing.T) {
	store := &mockReportStore{
		stats: []db.FairnessStat{
			{StaffID: "staff-a", StaffNumber: 101, TotalRecalls: 2, TotalHours: 9},
		},
	}
	logger := zap.NewNop()

	stats, err := FairnessReport(context.Background(), store, logger, fairness.Config{}, "2025-01-01", "2025-03-01")
	require.NoError(t, err)

	require.Len(t, stats, 1)
	assert.Equal(t, "2025-01-01", store.from)
	assert.Equal(t, "2025-03-01", store.to)
}

func TestFairnessReport_DefaultsToTrailingWindow(t *testing.T) {
	store := &mockReportStore{}
	logger := zap.NewNop()

	_, err := FairnessReport(context.Background(), store, logger, fairness.Config{WindowMonths: 12}, "", "")
	require.NoError(t, err)

	assert.Equal(t, time.Now().AddDate(0, -12, 0).Format("2006-01-02"), store.from)
	assert.Equal(t, time.Now().Format("2006-01-02"), store.to)
}

func TestFairnessReport_InvalidDate(t *testing.T) {
	store := &mockReportStore{}
	logger := zap.NewNop()

	_, err := FairnessReport(context.Background(), store, logger, fairness.Config{}, "01/01/2025", "")
	require.Error(t, err)
	assert.Empty(t, store.from)
}
