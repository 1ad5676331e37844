package fairness

// Classification labels an award relative to the fairness ordering
type Classification string

const (
	// ClassificationTopRanked means the assignee was the top-ranked
	// candidate among those who responded available
	ClassificationTopRanked Classification = "top-ranked"

	// ClassificationManual means the award bypassed the fairness
	// ordering: either nobody responded available, or the assignee was
	// not the top-ranked responder
	ClassificationManual Classification = "manual"
)

// ClassifyAssignment classifies an award against the ranked list of
// staff who responded available. The classification is advisory audit
// metadata; it never blocks the award.
func ClassifyAssignment(assignedStaffID string, available []RankedCandidate) Classification {
	if len(available) == 0 {
		return ClassificationManual
	}

	if available[0].ID != assignedStaffID {
		return ClassificationManual
	}

	return ClassificationTopRanked
}
