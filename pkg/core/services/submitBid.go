package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// BidStore defines the storage operations needed to submit a bid
type BidStore interface {
	GetRecall(ctx context.Context, id string) (*db.Recall, error)
	RecallAssigned(ctx context.Context, recallID string) (bool, error)
	GetStaff(ctx context.Context, id string) (*db.Staff, error)
	GetActiveAssignmentsForStaff(ctx context.Context, staffID string) ([]db.Assignment, error)
	UpsertResponse(ctx context.Context, response *db.Response) error
}

// BidResult reports a recorded bid with any advisory schedule conflicts
// the bidder would face if awarded
type BidResult struct {
	Response  *db.Response
	Conflicts []fairness.Window
}

// SubmitBid records a staff member's availability response to an active
// recall. Bids against missing or inactive recalls fail with
// db.ErrNotFound; bids against already-assigned recalls fail with
// db.ErrAlreadyAssigned. When the bidder responds available, any
// overlap with their existing active assignments is returned as
// advisory conflict information; it does not block the bid.
func SubmitBid(ctx context.Context, store BidStore, logger *zap.Logger, recallID, staffID, response string) (*BidResult, error) {
	if response != db.ResponseAvailable && response != db.ResponseUnavailable {
		return nil, fmt.Errorf("invalid response %q", response)
	}

	recall, err := store.GetRecall(ctx, recallID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recall %s: %w", recallID, err)
	}

	if recall.Status != db.RecallStatusActive {
		return nil, fmt.Errorf("recall %s is %s: %w", recallID, recall.Status, db.ErrNotFound)
	}

	if _, err := store.GetStaff(ctx, staffID); err != nil {
		return nil, fmt.Errorf("failed to fetch staff %s: %w", staffID, err)
	}

	assigned, err := store.RecallAssigned(ctx, recallID)
	if err != nil {
		return nil, fmt.Errorf("failed to check recall assignment: %w", err)
	}
	if assigned {
		return nil, fmt.Errorf("recall %s: %w", recallID, db.ErrAlreadyAssigned)
	}

	// An error return must not leave a recorded bid behind, so the
	// conflict lookup runs before the upsert
	var conflicts []fairness.Window
	if response == db.ResponseAvailable {
		conflicts, err = bidConflicts(ctx, store, recall, staffID)
		if err != nil {
			return nil, err
		}
	}

	bid := &db.Response{
		RecallID: recallID,
		StaffID:  staffID,
		Response: response,
	}

	if err := store.UpsertResponse(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}

	result := &BidResult{Response: bid, Conflicts: conflicts}

	logger.Info("Bid recorded",
		zap.String("recall_id", recallID),
		zap.String("staff_id", staffID),
		zap.String("response", response),
		zap.Int("conflicts", len(result.Conflicts)))

	return result, nil
}

// bidConflicts checks the bidder's other active assignments against the
// recall window
func bidConflicts(ctx context.Context, store BidStore, recall *db.Recall, staffID string) ([]fairness.Window, error) {
	assignments, err := store.GetActiveAssignmentsForStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for staff %s: %w", staffID, err)
	}

	// The recall being bid on is not a conflict with itself
	var others []db.Assignment
	for _, a := range assignments {
		if a.RecallID != recall.ID {
			others = append(others, a)
		}
	}

	_, windows := fairness.HasConflict(recallWindow(recall), assignmentRecords(others))
	return windows, nil
}
