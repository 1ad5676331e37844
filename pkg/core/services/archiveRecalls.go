package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// ArchiveStore defines the storage operations needed to archive old
// recalls
type ArchiveStore interface {
	ArchiveRecallsBefore(ctx context.Context, cutoff string) (*db.ArchiveCounts, error)
	GetVerifiedStaff(ctx context.Context) ([]db.Staff, error)
	RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error)
}

// ArchiveOldRecalls moves recalls older than the given number of months
// into the archive tables and recalculates the cached staff totals
// afterwards, since archived assignments no longer count toward the
// fairness window.
func ArchiveOldRecalls(ctx context.Context, store ArchiveStore, logger *zap.Logger, cfg fairness.Config, months int) (*db.ArchiveCounts, error) {
	if months <= 0 {
		return nil, fmt.Errorf("archive months must be positive, got %d", months)
	}

	cutoff := time.Now().AddDate(0, -months, 0).Format(dateLayout)
	logger.Info("Archiving old recalls", zap.String("cutoff", cutoff))

	counts, err := store.ArchiveRecallsBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to archive recalls: %w", err)
	}

	logger.Info("Archive completed",
		zap.Int("recalls_archived", counts.RecallsArchived),
		zap.Int("assignments_archived", counts.AssignmentsArchived),
		zap.Int("responses_deleted", counts.ResponsesDeleted))

	if _, err := RecalculateAllTotals(ctx, store, logger, cfg); err != nil {
		return counts, fmt.Errorf("archive succeeded but recalculation failed: %w", err)
	}

	return counts, nil
}
