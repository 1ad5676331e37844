package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/db"
)

// RegisterStaffStore defines the storage operations needed to register
// staff
type RegisterStaffStore interface {
	InsertStaff(ctx context.Context, staff *db.Staff) error
}

// RegisterStaffParams describes a new staff member
type RegisterStaffParams struct {
	StaffNumber int
	FirstName   string
	LastName    string
	Email       string
	Station     string
	Verified    bool
}

// RegisterStaff adds a staff member to the roster. New members start
// with no recall history; the fairness ranking treats them as
// never-recalled until their first award.
func RegisterStaff(ctx context.Context, store RegisterStaffStore, logger *zap.Logger, params RegisterStaffParams) (*db.Staff, error) {
	if params.StaffNumber <= 0 {
		return nil, fmt.Errorf("staff number must be positive, got %d", params.StaffNumber)
	}
	if params.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	staff := &db.Staff{
		ID:          uuid.New().String(),
		StaffNumber: params.StaffNumber,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Station:     params.Station,
		Verified:    params.Verified,
	}

	if err := store.InsertStaff(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to insert staff: %w", err)
	}

	logger.Info("Staff member registered",
		zap.String("staff_id", staff.ID),
		zap.Int("staff_number", staff.StaffNumber),
		zap.Bool("verified", staff.Verified))

	return staff, nil
}
