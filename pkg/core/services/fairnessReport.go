package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// ReportStore defines the storage operations needed for fairness reports
type ReportStore interface {
	GetFairnessStats(ctx context.Context, from, to string) ([]db.FairnessStat, error)
}

// FairnessReport aggregates per-staff recall statistics for the given
// date range. When no range is given it defaults to the trailing
// fairness window ending today.
func FairnessReport(ctx context.Context, store ReportStore, logger *zap.Logger, cfg fairness.Config, from, to string) ([]db.FairnessStat, error) {
	if from == "" {
		from = windowStart(cfg)
	}
	if to == "" {
		to = time.Now().Format(dateLayout)
	}

	if _, err := time.Parse(dateLayout, from); err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	stats, err := store.GetFairnessStats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fairness stats: %w", err)
	}

	logger.Info("Fairness report generated",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("staff_count", len(stats)))

	return stats, nil
}
