package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// GetRecall retrieves a single recall by id
func (d *DB) GetRecall(ctx context.Context, id string) (*db.Recall, error) {
	var recall db.Recall
	var date time.Time
	var createdBy *string

	err := d.pool.QueryRow(ctx, `
		SELECT id, date, start_time, end_time, suburb, station, description, status, created_by
		FROM recall
		WHERE id = $1
	`, id).Scan(&recall.ID, &date, &recall.StartTime, &recall.EndTime,
		&recall.Suburb, &recall.Station, &recall.Description, &recall.Status, &createdBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("recall %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recall: %w", err)
	}

	recall.Date = date.Format("2006-01-02")
	if createdBy != nil {
		recall.CreatedBy = *createdBy
	}

	return &recall, nil
}

// InsertRecall inserts a new recall record
func (d *DB) InsertRecall(ctx context.Context, recall *db.Recall) error {
	status := recall.Status
	if status == "" {
		status = db.RecallStatusActive
	}

	var createdBy *string
	if recall.CreatedBy != "" {
		createdBy = &recall.CreatedBy
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO recall (id, date, start_time, end_time, suburb, station, description, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, recall.ID, recall.Date, recall.StartTime, recall.EndTime,
		recall.Suburb, recall.Station, recall.Description, status, createdBy)
	if err != nil {
		return fmt.Errorf("failed to insert recall: %w", err)
	}

	return nil
}

// RecallAssigned reports whether the recall already has an assignment
func (d *DB) RecallAssigned(ctx context.Context, recallID string) (bool, error) {
	var assigned bool
	err := d.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM recall_assignment WHERE recall_id = $1)
	`, recallID).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("failed to check recall assignment: %w", err)
	}

	return assigned, nil
}
