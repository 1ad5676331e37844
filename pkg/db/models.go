package db

// Recall status values
const (
	RecallStatusActive    = "active"
	RecallStatusCancelled = "cancelled"
	RecallStatusCompleted = "completed"
)

// Bid response values
const (
	ResponseAvailable   = "available"
	ResponseUnavailable = "unavailable"
)

// Staff represents a staff member record.
// TotalRecallHours and LastRecallDate are cached summaries over the
// assignment history; RefreshStaffTotals recomputes them idempotently.
type Staff struct {
	ID               string
	StaffNumber      int
	FirstName        string
	LastName         string
	Email            string
	Station          string
	Verified         bool
	TotalRecallHours float64
	// LastRecallDate is "2006-01-02", empty if never recalled
	LastRecallDate string
}

// Recall represents a callout shift staff can bid on
type Recall struct {
	ID          string
	Date        string // "2006-01-02"
	StartTime   string // "15:04"
	EndTime     string // "15:04"
	Suburb      string
	Station     string
	Description string
	Status      string
	CreatedBy   string
}

// Response represents a staff member's bid response to a recall
type Response struct {
	RecallID     string
	StaffID      string
	Response     string
	ResponseTime string // RFC3339
}

// Assignment represents the award of a recall to a staff member.
// The Recall* fields are populated from a join when assignments are read
// back for fairness counting and conflict detection.
type Assignment struct {
	ID         string
	RecallID   string
	StaffID    string
	AssignedBy string
	AssignedAt string // RFC3339
	Hours      float64
	IsManual   bool
	Note       string

	RecallDate   string // "2006-01-02"
	StartTime    string // "15:04"
	EndTime      string // "15:04"
	RecallStatus string
}

// FairnessStat is a per-staff summary row for fairness reports
type FairnessStat struct {
	StaffID             string
	StaffNumber         int
	FirstName           string
	LastName            string
	TotalRecalls        int
	TotalHours          float64
	AvgHoursPerRecall   float64
	ManualAssignments   int
	LastRecallDate      string // empty if never recalled in range
	DaysSinceLastRecall int    // -1 if never recalled in range
}

// ArchiveCounts reports what a recall archival run moved and deleted
type ArchiveCounts struct {
	RecallsArchived     int
	AssignmentsArchived int
	ResponsesDeleted    int
}
