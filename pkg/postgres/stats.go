package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// GetFairnessStats aggregates per-staff recall totals for the given
// date range (inclusive), for fairness reporting. Cancelled recalls are
// excluded.
func (d *DB) GetFairnessStats(ctx context.Context, from, to string) ([]db.FairnessStat, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT
			s.id,
			s.staff_number,
			s.first_name,
			s.last_name,
			COUNT(ra.id),
			COALESCE(SUM(ra.hours), 0),
			COALESCE(AVG(ra.hours), 0),
			COALESCE(SUM(CASE WHEN ra.is_manual THEN 1 ELSE 0 END), 0),
			MAX(r.date)
		FROM staff s
		LEFT JOIN (
			recall_assignment ra
			JOIN recall r ON ra.recall_id = r.id
				AND r.status <> 'cancelled'
				AND r.date BETWEEN $1 AND $2
		) ON s.id = ra.staff_id
		WHERE s.verified = TRUE
		GROUP BY s.id, s.staff_number, s.first_name, s.last_name
		ORDER BY COUNT(ra.id) ASC, COALESCE(SUM(ra.hours), 0) ASC, s.staff_number ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query fairness stats: %w", err)
	}
	defer rows.Close()

	var stats []db.FairnessStat
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for rows.Next() {
		var stat db.FairnessStat
		var lastRecall *time.Time

		err := rows.Scan(&stat.StaffID, &stat.StaffNumber, &stat.FirstName, &stat.LastName,
			&stat.TotalRecalls, &stat.TotalHours, &stat.AvgHoursPerRecall,
			&stat.ManualAssignments, &lastRecall)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fairness stat: %w", err)
		}

		if lastRecall != nil {
			stat.LastRecallDate = lastRecall.Format("2006-01-02")
			stat.DaysSinceLastRecall = int(today.Sub(lastRecall.UTC().Truncate(24*time.Hour)).Hours() / 24)
		} else {
			stat.DaysSinceLastRecall = -1
		}

		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fairness stats: %w", err)
	}

	return stats, nil
}
