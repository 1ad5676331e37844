package services

import (
	"time"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

const dateLayout = "2006-01-02"

// windowStart returns the start date of the trailing fairness window as
// a "2006-01-02" string
func windowStart(cfg fairness.Config) string {
	months := cfg.WindowMonths
	if months <= 0 {
		months = fairness.DefaultWindowMonths
	}
	return time.Now().AddDate(0, -months, 0).Format(dateLayout)
}

// recallWindow maps a recall to its fairness window
func recallWindow(recall *db.Recall) fairness.Window {
	return fairness.Window{
		Date:  recall.Date,
		Start: recall.StartTime,
		End:   recall.EndTime,
	}
}

// candidateFromStaff maps a staff record to an engine candidate
func candidateFromStaff(staff db.Staff) fairness.Candidate {
	candidate := fairness.Candidate{
		ID:               staff.ID,
		StaffNumber:      staff.StaffNumber,
		Verified:         staff.Verified,
		TotalRecallHours: staff.TotalRecallHours,
	}

	if staff.LastRecallDate != "" {
		if last, err := time.Parse(dateLayout, staff.LastRecallDate); err == nil {
			candidate.LastRecallDate = &last
		}
	}

	return candidate
}

func candidatesFromStaff(staff []db.Staff) []fairness.Candidate {
	candidates := make([]fairness.Candidate, 0, len(staff))
	for _, s := range staff {
		candidates = append(candidates, candidateFromStaff(s))
	}
	return candidates
}

// assignmentRecord maps a stored assignment (with joined recall fields)
// to an engine assignment record
func assignmentRecord(assignment db.Assignment) fairness.AssignmentRecord {
	return fairness.AssignmentRecord{
		RecallID: assignment.RecallID,
		Window: fairness.Window{
			Date:  assignment.RecallDate,
			Start: assignment.StartTime,
			End:   assignment.EndTime,
		},
		Cancelled: assignment.RecallStatus == db.RecallStatusCancelled,
		Active:    assignment.RecallStatus == db.RecallStatusActive,
		Hours:     assignment.Hours,
	}
}

func assignmentRecords(assignments []db.Assignment) []fairness.AssignmentRecord {
	records := make([]fairness.AssignmentRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, assignmentRecord(a))
	}
	return records
}

// historyFromAssignments builds a complete history set keyed by staff id
func historyFromAssignments(assignments []db.Assignment) *fairness.HistorySet {
	history := fairness.NewHistorySet(true)
	for _, a := range assignments {
		history.Add(a.StaffID, assignmentRecord(a))
	}
	return history
}

// filterToResponders restricts a ranked list to the given staff ids,
// preserving the fairness order
func filterToResponders(ranked []fairness.RankedCandidate, responderIDs []string) []fairness.RankedCandidate {
	responders := make(map[string]bool, len(responderIDs))
	for _, id := range responderIDs {
		responders[id] = true
	}

	var filtered []fairness.RankedCandidate
	for _, candidate := range ranked {
		if responders[candidate.ID] {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
