package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

const uniqueViolation = "23505"

// CreateAssignment awards a recall to a staff member. The check and the
// insert run in one transaction with the recall row locked, so two
// concurrent awards against the same recall cannot both succeed; the
// loser gets db.ErrAlreadyAssigned. The recall must exist and be active.
func (d *DB) CreateAssignment(ctx context.Context, assignment *db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `
		SELECT status FROM recall WHERE id = $1 FOR UPDATE
	`, assignment.RecallID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("recall %s: %w", assignment.RecallID, db.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock recall: %w", err)
	}

	if status != db.RecallStatusActive {
		return fmt.Errorf("recall %s is %s: %w", assignment.RecallID, status, db.ErrNotFound)
	}

	var assigned bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM recall_assignment WHERE recall_id = $1)
	`, assignment.RecallID).Scan(&assigned)
	if err != nil {
		return fmt.Errorf("failed to check existing assignment: %w", err)
	}
	if assigned {
		return fmt.Errorf("recall %s: %w", assignment.RecallID, db.ErrAlreadyAssigned)
	}

	var assignedBy *string
	if assignment.AssignedBy != "" {
		assignedBy = &assignment.AssignedBy
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO recall_assignment (id, recall_id, staff_id, assigned_by, assigned_at, hours, is_manual, note)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, $7)
	`, assignment.ID, assignment.RecallID, assignment.StaffID, assignedBy,
		assignment.Hours, assignment.IsManual, assignment.Note)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("recall %s: %w", assignment.RecallID, db.ErrAlreadyAssigned)
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}

	return nil
}

// GetAssignmentHistory retrieves all assignments joined with their
// recall windows, for fairness counting and recency ranking
func (d *DB) GetAssignmentHistory(ctx context.Context) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT ra.id, ra.recall_id, ra.staff_id, ra.assigned_at, ra.hours, ra.is_manual, ra.note,
		       r.date, r.start_time, r.end_time, r.status
		FROM recall_assignment ra
		JOIN recall r ON ra.recall_id = r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment history: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// GetActiveAssignmentsForStaff retrieves the staff member's assignments
// on recalls that are still active, for conflict detection
func (d *DB) GetActiveAssignmentsForStaff(ctx context.Context, staffID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT ra.id, ra.recall_id, ra.staff_id, ra.assigned_at, ra.hours, ra.is_manual, ra.note,
		       r.date, r.start_time, r.end_time, r.status
		FROM recall_assignment ra
		JOIN recall r ON ra.recall_id = r.id
		WHERE ra.staff_id = $1
		AND r.status = 'active'
	`, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]db.Assignment, error) {
	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var assignedAt time.Time
		var date time.Time

		err := rows.Scan(&a.ID, &a.RecallID, &a.StaffID, &assignedAt, &a.Hours, &a.IsManual, &a.Note,
			&date, &a.StartTime, &a.EndTime, &a.RecallStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		a.AssignedAt = assignedAt.UTC().Format(time.RFC3339)
		a.RecallDate = date.Format("2006-01-02")
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
