package fairness

import (
	"sort"
	"time"
)

// RankCandidates orders the staff pool for the target recall window.
//
// The ordering is a composite, stable sort:
//  1. recalls in the trailing fairness window, ascending
//  2. total recall hours, ascending
//  3. days since last recall, descending (never recalled uses the
//     sentinel so it sorts to the front of the tier)
//  4. staff number, ascending
//
// Staff numbers are unique so the order is total and deterministic;
// the result never depends on the input pool order. Unverified staff
// are filtered out. An empty pool produces an empty list, not an error.
// An invalid target window fails with ErrInvalidWindow.
func RankCandidates(now time.Time, cfg Config, target Window, pool []Candidate, history History) ([]RankedCandidate, error) {
	cfg = cfg.withDefaults()

	if err := target.Validate(); err != nil {
		return nil, err
	}

	windowStart := now.AddDate(0, -cfg.WindowMonths, 0)

	ranked := make([]RankedCandidate, 0, len(pool))
	for _, candidate := range pool {
		if !candidate.Verified {
			continue
		}

		var records []AssignmentRecord
		if history != nil {
			records = history.AssignmentsFor(candidate.ID)
		}

		rc := RankedCandidate{Candidate: candidate}
		rc.RecallsInWindow = countRecallsInWindow(records, windowStart)
		rc.DaysSinceLastRecall, rc.RecencySource = recency(now, cfg, candidate, records, history)
		rc.HasConflict, rc.ConflictingWindows = HasConflict(target, records)

		ranked = append(ranked, rc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return lessFair(ranked[i], ranked[j])
	})

	return ranked, nil
}

// lessFair is the composite fairness comparator
func lessFair(a, b RankedCandidate) bool {
	if a.RecallsInWindow != b.RecallsInWindow {
		return a.RecallsInWindow < b.RecallsInWindow
	}
	if a.TotalRecallHours != b.TotalRecallHours {
		return a.TotalRecallHours < b.TotalRecallHours
	}
	if a.DaysSinceLastRecall != b.DaysSinceLastRecall {
		return a.DaysSinceLastRecall > b.DaysSinceLastRecall
	}
	return a.StaffNumber < b.StaffNumber
}

// countRecallsInWindow counts non-cancelled assignments dated on or
// after the window start
func countRecallsInWindow(records []AssignmentRecord, windowStart time.Time) int {
	count := 0
	for _, record := range records {
		if record.Cancelled {
			continue
		}

		date, err := time.Parse(dateLayout, record.Window.Date)
		if err != nil {
			continue
		}

		if !date.Before(truncateToDate(windowStart)) {
			count++
		}
	}
	return count
}

// recency derives days-since-last-recall and records its source.
// A history that can rank recency is authoritative; otherwise the
// cached LastRecallDate on the candidate is used. With neither source
// the candidate is explicitly unranked and carries the sentinel.
func recency(now time.Time, cfg Config, candidate Candidate, records []AssignmentRecord, history History) (int, RecencySource) {
	if history != nil && history.RanksRecency() {
		last, ok := lastRecallDate(records)
		if !ok {
			// Never recalled
			return cfg.SentinelDays, RecencyFromHistory
		}
		return daysBetween(last, now), RecencyFromHistory
	}

	if candidate.LastRecallDate != nil {
		return daysBetween(*candidate.LastRecallDate, now), RecencyFromCache
	}

	return cfg.SentinelDays, RecencyUnranked
}

// lastRecallDate finds the most recent non-cancelled assignment date
// across all records
func lastRecallDate(records []AssignmentRecord) (time.Time, bool) {
	var last time.Time
	found := false

	for _, record := range records {
		if record.Cancelled {
			continue
		}

		date, err := time.Parse(dateLayout, record.Window.Date)
		if err != nil {
			continue
		}

		if !found || date.After(last) {
			last = date
			found = true
		}
	}

	return last, found
}

// daysBetween returns the calendar-day difference between two instants
func daysBetween(from, to time.Time) int {
	return int(truncateToDate(to).Sub(truncateToDate(from)).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
