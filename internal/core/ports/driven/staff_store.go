package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// StaffStore persists resident-staff records attached to units.
type StaffStore interface {
	// Save stores a new staff record or updates an existing one.
	Save(ctx context.Context, staff *domain.StaffRecord) error

	// Get retrieves an active staff record by unit and staff id.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, unitID, staffID string) (*domain.StaffRecord, error)

	// ListByUnit retrieves all active staff records of a unit.
	ListByUnit(ctx context.Context, unitID string) ([]*domain.StaffRecord, error)

	// Archive copies the active record into the archive with a server
	// timestamp and deletes the original, in one transaction.
	// driveArchived records whether the storage-side folder move succeeded.
	Archive(ctx context.Context, unitID, staffID string, driveArchived bool) error
}
