package fairness

import "time"

// Default tuning values. The fairness window and the "never recalled"
// sentinel are configurable rather than baked in.
const (
	DefaultWindowMonths = 24
	DefaultSentinelDays = 999999
)

// Config holds the engine tuning parameters
type Config struct {
	// WindowMonths is the trailing window over which recall counts and
	// hours are accumulated
	WindowMonths int

	// SentinelDays is the days-since-last-recall value assigned to staff
	// who have never been recalled, so they sort ahead of everyone on
	// the recency criterion
	SentinelDays int
}

// withDefaults fills unset fields with the default tuning values
func (c Config) withDefaults() Config {
	if c.WindowMonths <= 0 {
		c.WindowMonths = DefaultWindowMonths
	}
	if c.SentinelDays <= 0 {
		c.SentinelDays = DefaultSentinelDays
	}
	return c
}

// Candidate is a read-only snapshot of a staff member as the engine
// consumes it. TotalRecallHours and LastRecallDate are the cached
// summaries maintained by the recalculation path.
type Candidate struct {
	ID               string
	StaffNumber      int
	Verified         bool
	TotalRecallHours float64

	// LastRecallDate is the cached most recent non-cancelled assignment
	// date; nil means never recalled
	LastRecallDate *time.Time
}

// AssignmentRecord binds a staff member to a recall window for fairness
// counting and conflict detection
type AssignmentRecord struct {
	RecallID  string
	Window    Window
	Cancelled bool
	// Active is true while the underlying recall has status "active";
	// only active assignments can conflict with a new recall
	Active bool
	Hours  float64
}

// History supplies per-staff assignment history to the engine.
type History interface {
	// AssignmentsFor returns all known assignments for the staff member
	AssignmentsFor(staffID string) []AssignmentRecord

	// RanksRecency reports whether the history is complete enough to
	// answer "when was this staff member last recalled". A provider
	// restricted to the fairness window cannot, since recency looks
	// across all time; the engine then falls back to the cached
	// LastRecallDate on the candidate.
	RanksRecency() bool
}

// HistorySet is a map-backed History implementation
type HistorySet struct {
	byStaff      map[string][]AssignmentRecord
	ranksRecency bool
}

// NewHistorySet creates an empty history set. complete indicates whether
// the records that will be added cover the staff members' full history
// rather than just the fairness window.
func NewHistorySet(complete bool) *HistorySet {
	return &HistorySet{
		byStaff:      make(map[string][]AssignmentRecord),
		ranksRecency: complete,
	}
}

// Add appends assignment records for a staff member
func (h *HistorySet) Add(staffID string, records ...AssignmentRecord) {
	h.byStaff[staffID] = append(h.byStaff[staffID], records...)
}

func (h *HistorySet) AssignmentsFor(staffID string) []AssignmentRecord {
	return h.byStaff[staffID]
}

func (h *HistorySet) RanksRecency() bool {
	return h.ranksRecency
}

// RecencySource identifies where a candidate's days-since-last-recall
// value came from
type RecencySource string

const (
	// RecencyFromHistory means the value was derived from the full
	// assignment history
	RecencyFromHistory RecencySource = "history"

	// RecencyFromCache means the value was derived from the cached
	// LastRecallDate summary on the staff record
	RecencyFromCache RecencySource = "cached"

	// RecencyUnranked means no recency data was available; the value is
	// the sentinel and the candidate is effectively unranked on the
	// recency criterion
	RecencyUnranked RecencySource = "none"
)

// RankedCandidate is a candidate annotated with the derived fairness
// fields and conflict flags
type RankedCandidate struct {
	Candidate

	// RecallsInWindow counts non-cancelled assignments dated within the
	// trailing fairness window
	RecallsInWindow int

	// DaysSinceLastRecall is the calendar-day difference between now and
	// the most recent non-cancelled assignment, across all time; the
	// sentinel if never recalled
	DaysSinceLastRecall int

	// RecencySource records how DaysSinceLastRecall was derived
	RecencySource RecencySource

	// HasConflict is true when the target recall window overlaps one of
	// the candidate's active assignments
	HasConflict bool

	// ConflictingWindows lists the overlapping assignment windows
	ConflictingWindows []Window
}
