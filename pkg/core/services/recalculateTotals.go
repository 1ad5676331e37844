package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// RecalcStore defines the storage operations needed to recalculate
// cached staff totals
type RecalcStore interface {
	GetVerifiedStaff(ctx context.Context) ([]db.Staff, error)
	RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error)
}

// RecalculateAllTotals recomputes the cached total_recall_hours and
// last_recall_date for every verified staff member from the assignment
// ledger. The recomputation is idempotent; running it twice yields the
// same result. Returns the number of staff records updated.
func RecalculateAllTotals(ctx context.Context, store RecalcStore, logger *zap.Logger, cfg fairness.Config) (int, error) {
	staff, err := store.GetVerifiedStaff(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch staff: %w", err)
	}

	since := windowStart(cfg)
	logger.Info("Recalculating staff recall totals",
		zap.Int("staff_count", len(staff)),
		zap.String("window_start", since))

	updated := 0
	for _, member := range staff {
		ok, err := store.RefreshStaffTotals(ctx, member.ID, since)
		if err != nil {
			return updated, fmt.Errorf("failed to refresh totals for staff %s: %w", member.ID, err)
		}
		if ok {
			updated++
		}
	}

	logger.Info("Recall totals recalculated", zap.Int("updated", updated))
	return updated, nil
}
