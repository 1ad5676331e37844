package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// CreateRecallStore defines the storage operations needed to create a
// recall
type CreateRecallStore interface {
	InsertRecall(ctx context.Context, recall *db.Recall) error
}

// CreateRecallParams describes a new recall shift
type CreateRecallParams struct {
	Date        string
	StartTime   string
	EndTime     string
	Suburb      string
	Station     string
	Description string
	CreatedBy   string
}

// CreateRecall opens a new active recall for bidding. The shift window
// must be well formed; a malformed window fails with
// fairness.ErrInvalidWindow before anything is stored.
func CreateRecall(ctx context.Context, store CreateRecallStore, logger *zap.Logger, params CreateRecallParams) (*db.Recall, error) {
	window := fairness.Window{Date: params.Date, Start: params.StartTime, End: params.EndTime}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	recall := &db.Recall{
		ID:          uuid.New().String(),
		Date:        params.Date,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Suburb:      params.Suburb,
		Station:     params.Station,
		Description: params.Description,
		Status:      db.RecallStatusActive,
		CreatedBy:   params.CreatedBy,
	}

	if err := store.InsertRecall(ctx, recall); err != nil {
		return nil, fmt.Errorf("failed to insert recall: %w", err)
	}

	hours, _ := window.Hours()
	logger.Info("Recall created",
		zap.String("recall_id", recall.ID),
		zap.String("date", recall.Date),
		zap.Float64("hours", hours))

	return recall, nil
}
