package db

import "context"

// Database defines the full set of storage operations.
// postgres.DB implements this interface; services depend on narrower
// per-service subsets of it.
type Database interface {
	GetRecall(ctx context.Context, id string) (*Recall, error)
	InsertRecall(ctx context.Context, recall *Recall) error
	RecallAssigned(ctx context.Context, recallID string) (bool, error)

	GetStaff(ctx context.Context, id string) (*Staff, error)
	GetVerifiedStaff(ctx context.Context) ([]Staff, error)
	InsertStaff(ctx context.Context, staff *Staff) error
	RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error)

	GetAssignmentHistory(ctx context.Context) ([]Assignment, error)
	GetActiveAssignmentsForStaff(ctx context.Context, staffID string) ([]Assignment, error)
	CreateAssignment(ctx context.Context, assignment *Assignment) error

	GetAvailableResponderIDs(ctx context.Context, recallID string) ([]string, error)
	UpsertResponse(ctx context.Context, response *Response) error

	GetFairnessStats(ctx context.Context, from, to string) ([]FairnessStat, error)
	ArchiveRecallsBefore(ctx context.Context, cutoff string) (*ArchiveCounts, error)
}
