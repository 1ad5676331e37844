package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// GetStaff retrieves a single staff member by id
func (d *DB) GetStaff(ctx context.Context, id string) (*db.Staff, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, staff_number, first_name, last_name, email, station,
		       verified, total_recall_hours, last_recall_date
		FROM staff
		WHERE id = $1
	`, id)

	staff, err := scanStaff(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("staff member %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query staff member: %w", err)
	}

	return staff, nil
}

// GetVerifiedStaff retrieves all verified staff members
func (d *DB) GetVerifiedStaff(ctx context.Context) ([]db.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, staff_number, first_name, last_name, email, station,
		       verified, total_recall_hours, last_recall_date
		FROM staff
		WHERE verified = TRUE
		ORDER BY staff_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var members []db.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, *staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return members, nil
}

// InsertStaff inserts a new staff record
func (d *DB) InsertStaff(ctx context.Context, staff *db.Staff) error {
	var lastRecall *string
	if staff.LastRecallDate != "" {
		lastRecall = &staff.LastRecallDate
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO staff (id, staff_number, first_name, last_name, email,
		                   station, verified, total_recall_hours, last_recall_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, staff.ID, staff.StaffNumber, staff.FirstName, staff.LastName, staff.Email,
		staff.Station, staff.Verified, staff.TotalRecallHours, lastRecall)
	if err != nil {
		return fmt.Errorf("failed to insert staff member: %w", err)
	}

	return nil
}

// RefreshStaffTotals recomputes the cached fairness summary for one
// staff member from their assignment history: total hours over
// non-cancelled assignments dated on or after `since`, and the most
// recent non-cancelled assignment date across all time. The update is
// idempotent. Returns false if the staff member does not exist.
func (d *DB) RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE staff SET
			total_recall_hours = COALESCE((
				SELECT SUM(ra.hours)
				FROM recall_assignment ra
				JOIN recall r ON ra.recall_id = r.id
				WHERE ra.staff_id = staff.id
				AND r.date >= $2
				AND r.status <> 'cancelled'
			), 0),
			last_recall_date = (
				SELECT MAX(r.date)
				FROM recall_assignment ra
				JOIN recall r ON ra.recall_id = r.id
				WHERE ra.staff_id = staff.id
				AND r.status <> 'cancelled'
			)
		WHERE id = $1
	`, staffID, since)
	if err != nil {
		return false, fmt.Errorf("failed to refresh staff totals: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanStaff(row pgx.Row) (*db.Staff, error) {
	var staff db.Staff
	var lastRecall *time.Time

	err := row.Scan(&staff.ID, &staff.StaffNumber, &staff.FirstName, &staff.LastName,
		&staff.Email, &staff.Station, &staff.Verified, &staff.TotalRecallHours, &lastRecall)
	if err != nil {
		return nil, err
	}

	if lastRecall != nil {
		staff.LastRecallDate = lastRecall.Format("2006-01-02")
	}

	return &staff, nil
}
