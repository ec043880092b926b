package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// UnitStore persists the wing/floor layout and unit records of a society.
// Units live in a single authoritative table; batch saves are transactional
// so the layout and the society's unit count never diverge.
type UnitStore interface {
	// ReplaceWings replaces the society's whole wing/floor layout.
	ReplaceWings(ctx context.Context, societyID string, wings []*domain.Wing) error

	// GetWings retrieves the society's wing/floor layout.
	GetWings(ctx context.Context, societyID string) ([]*domain.Wing, error)

	// SaveUnits upserts the given units and updates the society's unit count
	// in the same transaction.
	SaveUnits(ctx context.Context, societyID string, units []*domain.Unit) (int, error)

	// ListUnits retrieves units for a society, optionally filtered by wing.
	ListUnits(ctx context.Context, societyID, wingID string) ([]*domain.Unit, error)

	// GetUnit retrieves a unit by id.
	// Returns domain.ErrNotFound if it does not exist.
	GetUnit(ctx context.Context, unitID string) (*domain.Unit, error)
}
