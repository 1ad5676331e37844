package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// ErrScheduleConflict is returned when the chosen staff member already
// holds an active assignment overlapping the recall window.
var ErrScheduleConflict = errors.New("staff member has a conflicting active assignment")

// ErrNoEligibleCandidates is returned when there are no verified staff
// to award the recall to.
var ErrNoEligibleCandidates = errors.New("no eligible candidates")

// AwardStore defines the storage operations needed to award a recall
type AwardStore interface {
	GetRecall(ctx context.Context, id string) (*db.Recall, error)
	GetVerifiedStaff(ctx context.Context) ([]db.Staff, error)
	GetAssignmentHistory(ctx context.Context) ([]db.Assignment, error)
	GetActiveAssignmentsForStaff(ctx context.Context, staffID string) ([]db.Assignment, error)
	GetAvailableResponderIDs(ctx context.Context, recallID string) ([]string, error)
	CreateAssignment(ctx context.Context, assignment *db.Assignment) error
	RefreshStaffTotals(ctx context.Context, staffID string, since string) (bool, error)
}

// Notifier sends award notifications. Delivery failures never fail the
// award itself.
type Notifier interface {
	SendEmail(to, subject, body string) error
}

// AwardParams describes an award request
type AwardParams struct {
	RecallID   string
	StaffID    string
	AssignedBy string
	// Hours overrides the hours derived from the recall window when > 0
	Hours float64
	Note  string
}

// AwardResult describes a completed award
type AwardResult struct {
	Assignment     *db.Assignment
	Classification fairness.Classification
	Notified       bool
}

// AwardRecall awards a recall to a staff member. The assignee's active
// assignments are re-checked for conflicts at award time, since any
// previously computed ranking may be stale. The award is classified as
// manual or top-ranked against the fairness ordering of those who
// responded available; the classification is stored on the assignment
// as audit metadata. The storage layer makes the final
// check-then-insert atomic, so a concurrent second award surfaces as
// db.ErrAlreadyAssigned.
func AwardRecall(ctx context.Context, store AwardStore, notifier Notifier, logger *zap.Logger, cfg fairness.Config, params AwardParams) (*AwardResult, error) {
	recall, err := store.GetRecall(ctx, params.RecallID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recall %s: %w", params.RecallID, err)
	}

	if recall.Status != db.RecallStatusActive {
		return nil, fmt.Errorf("recall %s is %s: %w", params.RecallID, recall.Status, db.ErrNotFound)
	}

	target := recallWindow(recall)
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("recall %s: %w", params.RecallID, err)
	}

	staff, err := store.GetVerifiedStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	if len(staff) == 0 {
		return nil, ErrNoEligibleCandidates
	}

	assignee, err := findStaff(staff, params.StaffID)
	if err != nil {
		return nil, err
	}

	// Authoritative conflict check against current data
	existing, err := store.GetActiveAssignmentsForStaff(ctx, params.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for staff %s: %w", params.StaffID, err)
	}

	if conflicted, windows := fairness.HasConflict(target, assignmentRecords(existing)); conflicted {
		logger.Warn("Award rejected due to schedule conflict",
			zap.String("recall_id", params.RecallID),
			zap.String("staff_id", params.StaffID),
			zap.Int("conflicts", len(windows)))
		return nil, fmt.Errorf("staff %s on recall %s: %w", params.StaffID, params.RecallID, ErrScheduleConflict)
	}

	classification, err := classifyAward(ctx, store, cfg, target, staff, params)
	if err != nil {
		return nil, err
	}

	hours := params.Hours
	if hours <= 0 {
		hours, err = target.Hours()
		if err != nil {
			return nil, fmt.Errorf("recall %s: %w", params.RecallID, err)
		}
	}

	assignment := &db.Assignment{
		ID:         uuid.New().String(),
		RecallID:   params.RecallID,
		StaffID:    params.StaffID,
		AssignedBy: params.AssignedBy,
		Hours:      hours,
		IsManual:   classification == fairness.ClassificationManual,
		Note:       params.Note,
	}

	if err := store.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	logger.Info("Recall awarded",
		zap.String("recall_id", params.RecallID),
		zap.String("staff_id", params.StaffID),
		zap.Float64("hours", hours),
		zap.String("classification", string(classification)))

	// Cached totals lag the award at worst until the next recalculation
	if _, err := store.RefreshStaffTotals(ctx, params.StaffID, windowStart(cfg)); err != nil {
		logger.Warn("Failed to refresh staff totals after award",
			zap.String("staff_id", params.StaffID),
			zap.Error(err))
	}

	notified := false
	if notifier != nil {
		subject, body := assignmentEmail(assignee, recall, hours)
		if err := notifier.SendEmail(assignee.Email, subject, body); err != nil {
			logger.Warn("Failed to send assignment notification",
				zap.String("staff_id", params.StaffID),
				zap.Error(err))
		} else {
			notified = true
		}
	}

	return &AwardResult{
		Assignment:     assignment,
		Classification: classification,
		Notified:       notified,
	}, nil
}

// classifyAward ranks the staff who responded available and classifies
// the award against that ordering
func classifyAward(ctx context.Context, store AwardStore, cfg fairness.Config, target fairness.Window, staff []db.Staff, params AwardParams) (fairness.Classification, error) {
	responderIDs, err := store.GetAvailableResponderIDs(ctx, params.RecallID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch responders: %w", err)
	}

	if len(responderIDs) == 0 {
		return fairness.ClassificationManual, nil
	}

	assignments, err := store.GetAssignmentHistory(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	ranked, err := fairness.RankCandidates(
		time.Now(),
		cfg,
		target,
		candidatesFromStaff(staff),
		historyFromAssignments(assignments),
	)
	if err != nil {
		return "", fmt.Errorf("failed to rank responders: %w", err)
	}

	available := filterToResponders(ranked, responderIDs)
	return fairness.ClassifyAssignment(params.StaffID, available), nil
}

func findStaff(staff []db.Staff, staffID string) (*db.Staff, error) {
	for i := range staff {
		if staff[i].ID == staffID {
			return &staff[i], nil
		}
	}
	return nil, fmt.Errorf("staff member %s: %w", staffID, db.ErrNotFound)
}

func assignmentEmail(assignee *db.Staff, recall *db.Recall, hours float64) (subject, body string) {
	subject = fmt.Sprintf("Recall assignment: %s %s-%s", recall.Date, recall.StartTime, recall.EndTime)
	body = fmt.Sprintf(
		"Hi %s,\n\nYou have been assigned the recall on %s from %s to %s (%.1f hours).\n\nLocation: %s %s\n%s\n",
		assignee.FirstName, recall.Date, recall.StartTime, recall.EndTime, hours,
		recall.Suburb, recall.Station, recall.Description,
	)
	return subject, body
}
