package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure societyService implements SocietyService
var _ driving.SocietyService = (*societyService)(nil)

// SocietyServiceConfig holds configuration for the society service.
type SocietyServiceConfig struct {
	// SocietyStore persists the society record.
	SocietyStore driven.SocietyStore

	// UnitStore persists the wing/floor layout and unit records.
	UnitStore driven.UnitStore

	// StaffStore persists resident-staff records.
	StaffStore driven.StaffStore

	// Auth hashes resident passwords before persist.
	Auth driven.AuthAdapter

	Logger *slog.Logger
}

// societyService implements the SocietyService interface.
type societyService struct {
	societies driven.SocietyStore
	units     driven.UnitStore
	staff     driven.StaffStore
	auth      driven.AuthAdapter
	logger    *slog.Logger
}

// NewSocietyService creates a new society service.
func NewSocietyService(cfg SocietyServiceConfig) driving.SocietyService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &societyService{
		societies: cfg.SocietyStore,
		units:     cfg.UnitStore,
		staff:     cfg.StaffStore,
		auth:      cfg.Auth,
		logger:    logger,
	}
}

// Get retrieves the admin's society summary.
func (s *societyService) Get(ctx context.Context, adminUID string) (*domain.SocietySummary, error) {
	society, err := s.societies.Get(ctx, adminUID)
	if err != nil {
		return nil, err
	}
	return society.ToSummary(), nil
}

// SaveWings replaces the society's wing/floor layout wholesale.
func (s *societyService) SaveWings(ctx context.Context, adminUID string, wings []driving.WingInput) error {
	if len(wings) == 0 {
		return fmt.Errorf("%w: at least one wing is required", domain.ErrInvalidInput)
	}
	if _, err := s.societies.Get(ctx, adminUID); err != nil {
		return err
	}

	records := make([]*domain.Wing, 0, len(wings))
	for _, w := range wings {
		if w.Name == "" {
			return fmt.Errorf("%w: wing name is required", domain.ErrInvalidInput)
		}
		floorCount := w.FloorCount
		if floorCount == 0 {
			floorCount = len(w.Floors)
		}
		records = append(records, &domain.Wing{
			ID:         uuid.NewString(),
			SocietyID:  adminUID,
			Name:       w.Name,
			FloorCount: floorCount,
			Floors:     w.Floors,
		})
	}

	if err := s.units.ReplaceWings(ctx, adminUID, records); err != nil {
		return fmt.Errorf("replace wings: %w", err)
	}
	s.logger.Info("society layout replaced", "admin_uid", adminUID, "wings", len(records))
	return nil
}

// GetWings retrieves the society's wing/floor layout.
func (s *societyService) GetWings(ctx context.Context, adminUID string) ([]*domain.Wing, error) {
	return s.units.GetWings(ctx, adminUID)
}

// SaveUnits upserts unit records in one transaction and returns the
// society's refreshed unit count.
func (s *societyService) SaveUnits(ctx context.Context, adminUID string, inputs []driving.UnitInput) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("%w: at least one unit is required", domain.ErrInvalidInput)
	}
	if _, err := s.societies.Get(ctx, adminUID); err != nil {
		return 0, err
	}

	now := time.Now()
	units := make([]*domain.Unit, 0, len(inputs))
	for _, in := range inputs {
		if in.WingID == "" || in.UnitName == "" {
			return 0, fmt.Errorf("%w: wingId and unitName are required", domain.ErrInvalidInput)
		}

		unit := &domain.Unit{
			ID:               in.ID,
			SocietyID:        adminUID,
			WingID:           in.WingID,
			FloorNumber:      in.FloorNumber,
			UnitName:         in.UnitName,
			UnitType:         in.UnitType,
			ResidentUsername: in.ResidentUsername,
			Status:           domain.UnitStatus(in.Status),
			DriveFolderID:    in.DriveFolderID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if unit.ID == "" {
			unit.ID = uuid.NewString()
		}
		if unit.Status == "" {
			unit.Status = domain.UnitStatusVacant
		}
		// Plaintext never reaches the store.
		if in.ResidentPassword != "" {
			hash, err := s.auth.HashPassword(in.ResidentPassword)
			if err != nil {
				return 0, fmt.Errorf("hash resident password: %w", err)
			}
			unit.ResidentPasswordHash = hash
		}
		units = append(units, unit)
	}

	count, err := s.units.SaveUnits(ctx, adminUID, units)
	if err != nil {
		return 0, fmt.Errorf("save units: %w", err)
	}
	return count, nil
}

// ListUnits retrieves unit summaries, optionally filtered by wing.
func (s *societyService) ListUnits(ctx context.Context, adminUID, wingID string) ([]*domain.UnitSummary, error) {
	units, err := s.units.ListUnits(ctx, adminUID, wingID)
	if err != nil {
		return nil, err
	}
	summaries := make([]*domain.UnitSummary, 0, len(units))
	for _, u := range units {
		summaries = append(summaries, u.ToSummary())
	}
	return summaries, nil
}

// RegisterStaff attaches a staff member to one of the admin's units.
func (s *societyService) RegisterStaff(ctx context.Context, adminUID string, req driving.RegisterStaffRequest) (*domain.StaffRecord, error) {
	if req.UnitID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: unitId and name are required", domain.ErrInvalidInput)
	}

	unit, err := s.units.GetUnit(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}
	if unit.SocietyID != adminUID {
		return nil, fmt.Errorf("%w: unit belongs to another society", domain.ErrUnauthorized)
	}

	staff := &domain.StaffRecord{
		ID:            uuid.NewString(),
		UnitID:        req.UnitID,
		SocietyID:     adminUID,
		Name:          req.Name,
		Role:          req.Role,
		Phone:         req.Phone,
		DriveFolderID: req.DriveFolderID,
		CreatedAt:     time.Now(),
	}
	if err := s.staff.Save(ctx, staff); err != nil {
		return nil, fmt.Errorf("save staff record: %w", err)
	}
	return staff, nil
}
