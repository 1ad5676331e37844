package postgres

import (
	"context"
	"fmt"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// UpsertResponse records or updates a staff member's bid response to a
// recall. A repeat response replaces the previous one and refreshes the
// response time.
func (d *DB) UpsertResponse(ctx context.Context, response *db.Response) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO recall_response (recall_id, staff_id, response, response_time)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (recall_id, staff_id)
		DO UPDATE SET response = EXCLUDED.response, response_time = NOW()
	`, response.RecallID, response.StaffID, response.Response)
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}

	return nil
}

// GetAvailableResponderIDs retrieves the ids of verified staff who
// responded "available" to the recall
func (d *DB) GetAvailableResponderIDs(ctx context.Context, recallID string) ([]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT rr.staff_id
		FROM recall_response rr
		JOIN staff s ON rr.staff_id = s.id
		WHERE rr.recall_id = $1
		AND rr.response = 'available'
		AND s.verified = TRUE
	`, recallID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responders: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan responder id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responders: %w", err)
	}

	return ids, nil
}
