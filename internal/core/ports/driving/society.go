package driving

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// WingInput is one wing of the society layout as sent by the client.
type WingInput struct {
	Name       string         `json:"name"`
	FloorCount int            `json:"floorCount"`
	Floors     []domain.Floor `json:"floors"`
}

// UnitInput is one unit record as sent by the client. ResidentPassword is
// plaintext on the wire and hashed before persist.
type UnitInput struct {
	ID               string `json:"id,omitempty"`
	WingID           string `json:"wingId"`
	FloorNumber      int    `json:"floorNumber"`
	UnitName         string `json:"unitName"`
	UnitType         string `json:"unitType"`
	ResidentUsername string `json:"residentUsername,omitempty"`
	ResidentPassword string `json:"residentPassword,omitempty"`
	Status           string `json:"status,omitempty"`
	DriveFolderID    string `json:"driveFolderId,omitempty"`
}

// RegisterStaffRequest attaches a staff member to a unit.
type RegisterStaffRequest struct {
	UnitID        string `json:"unitId"`
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	Phone         string `json:"phone,omitempty"`
	DriveFolderID string `json:"driveFolderId,omitempty"`
}

// SocietyService manages the society record, its wing/floor layout and units.
type SocietyService interface {
	// Get retrieves the admin's society summary.
	Get(ctx context.Context, adminUID string) (*domain.SocietySummary, error)

	// SaveWings replaces the society's wing/floor layout wholesale.
	SaveWings(ctx context.Context, adminUID string, wings []WingInput) error

	// GetWings retrieves the society's wing/floor layout.
	GetWings(ctx context.Context, adminUID string) ([]*domain.Wing, error)

	// SaveUnits upserts unit records transactionally and returns the
	// society's new unit count.
	SaveUnits(ctx context.Context, adminUID string, units []UnitInput) (int, error)

	// ListUnits retrieves unit summaries, optionally filtered by wing.
	ListUnits(ctx context.Context, adminUID, wingID string) ([]*domain.UnitSummary, error)

	// RegisterStaff attaches a staff member to one of the admin's units.
	RegisterStaff(ctx context.Context, adminUID string, req RegisterStaffRequest) (*domain.StaffRecord, error)
}
