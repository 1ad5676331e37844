package fairness

// HasConflict reports whether the target recall window overlaps any of
// the staff member's active, non-cancelled assignments, and returns the
// overlapping windows. Only assignments on the same calendar date can
// conflict.
func HasConflict(target Window, existing []AssignmentRecord) (bool, []Window) {
	var conflicts []Window

	for _, record := range existing {
		if record.Cancelled || !record.Active {
			continue
		}

		if target.Overlaps(record.Window) {
			conflicts = append(conflicts, record.Window)
		}
	}

	return len(conflicts) > 0, conflicts
}
