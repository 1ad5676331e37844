package postgres

import (
	"context"
	"fmt"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// ArchiveRecallsBefore moves recalls dated before the cutoff, and their
// assignments, into the archive tables and deletes the live rows. The
// whole move runs in one transaction.
func (d *DB) ArchiveRecallsBefore(ctx context.Context, cutoff string) (*db.ArchiveCounts, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	counts := &db.ArchiveCounts{}

	tag, err := tx.Exec(ctx, `
		INSERT INTO recall_archive
			(original_id, date, start_time, end_time, suburb, station, description, status, created_by)
		SELECT id, date, start_time, end_time, suburb, station, description, status, created_by
		FROM recall
		WHERE date < $1
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to archive recalls: %w", err)
	}
	counts.RecallsArchived = int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `
		INSERT INTO recall_assignment_archive
			(original_id, recall_id, staff_id, assigned_by, assigned_at, hours, is_manual, note)
		SELECT ra.id, ra.recall_id, ra.staff_id, ra.assigned_by, ra.assigned_at, ra.hours, ra.is_manual, ra.note
		FROM recall_assignment ra
		JOIN recall r ON ra.recall_id = r.id
		WHERE r.date < $1
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to archive assignments: %w", err)
	}
	counts.AssignmentsArchived = int(tag.RowsAffected())

	// Delete children before recalls to respect foreign keys
	_, err = tx.Exec(ctx, `
		DELETE FROM recall_assignment ra
		USING recall r
		WHERE ra.recall_id = r.id AND r.date < $1
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete archived assignments: %w", err)
	}

	tag, err = tx.Exec(ctx, `
		DELETE FROM recall_response rr
		USING recall r
		WHERE rr.recall_id = r.id AND r.date < $1
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete archived responses: %w", err)
	}
	counts.ResponsesDeleted = int(tag.RowsAffected())

	_, err = tx.Exec(ctx, `DELETE FROM recall WHERE date < $1`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete archived recalls: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit archive: %w", err)
	}

	return counts, nil
}
