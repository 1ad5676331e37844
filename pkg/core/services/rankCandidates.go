package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// RankStore defines the storage operations needed to rank candidates
type RankStore interface {
	GetRecall(ctx context.Context, id string) (*db.Recall, error)
	GetVerifiedStaff(ctx context.Context) ([]db.Staff, error)
	GetAssignmentHistory(ctx context.Context) ([]db.Assignment, error)
}

// RankResult holds the ranked candidate list for a recall
type RankResult struct {
	Recall     *db.Recall
	Candidates []fairness.RankedCandidate
}

// RankRecallCandidates produces the fairness-ordered candidate list for
// an active recall, with each candidate annotated with scheduling
// conflicts against their existing active assignments. An empty staff
// pool yields an empty list, not an error.
func RankRecallCandidates(ctx context.Context, store RankStore, logger *zap.Logger, cfg fairness.Config, recallID string) (*RankResult, error) {
	recall, err := store.GetRecall(ctx, recallID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recall %s: %w", recallID, err)
	}

	if recall.Status != db.RecallStatusActive {
		return nil, fmt.Errorf("recall %s is %s: %w", recallID, recall.Status, db.ErrNotFound)
	}

	staff, err := store.GetVerifiedStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	assignments, err := store.GetAssignmentHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	logger.Debug("Ranking candidates",
		zap.String("recall_id", recallID),
		zap.Int("staff_count", len(staff)),
		zap.Int("assignment_count", len(assignments)))

	ranked, err := fairness.RankCandidates(
		time.Now(),
		cfg,
		recallWindow(recall),
		candidatesFromStaff(staff),
		historyFromAssignments(assignments),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates for recall %s: %w", recallID, err)
	}

	conflicted := 0
	for _, candidate := range ranked {
		if candidate.HasConflict {
			conflicted++
		}
	}

	logger.Info("Candidates ranked",
		zap.String("recall_id", recallID),
		zap.Int("candidates", len(ranked)),
		zap.Int("with_conflicts", conflicted))

	return &RankResult{Recall: recall, Candidates: ranked}, nil
}
