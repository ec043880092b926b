package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure UnitStore implements the interface.
var _ driven.UnitStore = (*UnitStore)(nil)

// UnitStore implements driven.UnitStore using PostgreSQL.
// Batch unit saves and the society's unit_count commit in one transaction so
// the two can never diverge.
type UnitStore struct {
	db *DB
}

// NewUnitStore creates a new PostgreSQL-backed unit store.
func NewUnitStore(db *DB) *UnitStore {
	return &UnitStore{db: db}
}

// ReplaceWings replaces the society's whole wing/floor layout.
func (s *UnitStore) ReplaceWings(ctx context.Context, societyID string, wings []*domain.Wing) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM wings WHERE society_id = $1`, societyID); err != nil {
			return fmt.Errorf("clear wings: %w", err)
		}

		query := `
			INSERT INTO wings (id, society_id, name, floor_count, floors, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for i, wing := range wings {
			floors, err := json.Marshal(wing.Floors)
			if err != nil {
				return fmt.Errorf("marshal floors: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query,
				wing.ID, societyID, wing.Name, wing.FloorCount, floors, i,
			); err != nil {
				return fmt.Errorf("insert wing: %w", err)
			}
		}
		return nil
	})
}

// GetWings retrieves the society's wing/floor layout in saved order.
func (s *UnitStore) GetWings(ctx context.Context, societyID string) ([]*domain.Wing, error) {
	query := `
		SELECT id, society_id, name, floor_count, floors
		FROM wings
		WHERE society_id = $1
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, societyID)
	if err != nil {
		return nil, fmt.Errorf("get wings: %w", err)
	}
	defer rows.Close()

	var wings []*domain.Wing
	for rows.Next() {
		var (
			wing   domain.Wing
			floors []byte
		)
		if err := rows.Scan(&wing.ID, &wing.SocietyID, &wing.Name, &wing.FloorCount, &floors); err != nil {
			return nil, fmt.Errorf("scan wing: %w", err)
		}
		if err := json.Unmarshal(floors, &wing.Floors); err != nil {
			return nil, fmt.Errorf("unmarshal floors: %w", err)
		}
		wings = append(wings, &wing)
	}
	return wings, rows.Err()
}

// SaveUnits upserts the given units and refreshes the society's unit count in
// the same transaction. Returns the new count.
func (s *UnitStore) SaveUnits(ctx context.Context, societyID string, units []*domain.Unit) (int, error) {
	var count int
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO units (id, society_id, wing_id, floor_number, unit_name, unit_type,
				resident_username, resident_password_hash, status, drive_folder_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				wing_id = EXCLUDED.wing_id,
				floor_number = EXCLUDED.floor_number,
				unit_name = EXCLUDED.unit_name,
				unit_type = EXCLUDED.unit_type,
				resident_username = EXCLUDED.resident_username,
				resident_password_hash = COALESCE(NULLIF(EXCLUDED.resident_password_hash, ''), units.resident_password_hash),
				status = EXCLUDED.status,
				drive_folder_id = EXCLUDED.drive_folder_id,
				updated_at = EXCLUDED.updated_at
		`
		now := time.Now()
		for _, unit := range units {
			createdAt := unit.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			if _, err := tx.ExecContext(ctx, query,
				unit.ID, societyID, unit.WingID, unit.FloorNumber, unit.UnitName, unit.UnitType,
				unit.ResidentUsername, unit.ResidentPasswordHash, string(unit.Status),
				unit.DriveFolderID, createdAt, now,
			); err != nil {
				return fmt.Errorf("upsert unit %s: %w", unit.ID, err)
			}
		}

		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM units WHERE society_id = $1`, societyID,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("count units: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE societies SET unit_count = $2, updated_at = NOW() WHERE admin_uid = $1`,
			societyID, count,
		)
		if err != nil {
			return fmt.Errorf("update unit count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListUnits retrieves units for a society, optionally filtered by wing.
func (s *UnitStore) ListUnits(ctx context.Context, societyID, wingID string) ([]*domain.Unit, error) {
	query := `
		SELECT id, society_id, wing_id, floor_number, unit_name, unit_type,
			resident_username, resident_password_hash, status, drive_folder_id, created_at, updated_at
		FROM units
		WHERE society_id = $1 AND ($2 = '' OR wing_id = $2)
		ORDER BY wing_id, floor_number, unit_name
	`
	rows, err := s.db.QueryContext(ctx, query, societyID, wingID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

// GetUnit retrieves a unit by id.
func (s *UnitStore) GetUnit(ctx context.Context, unitID string) (*domain.Unit, error) {
	query := `
		SELECT id, society_id, wing_id, floor_number, unit_name, unit_type,
			resident_username, resident_password_hash, status, drive_folder_id, created_at, updated_at
		FROM units
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, unitID)
	unit, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return unit, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*domain.Unit, error) {
	var (
		unit   domain.Unit
		status string
	)
	err := row.Scan(
		&unit.ID, &unit.SocietyID, &unit.WingID, &unit.FloorNumber,
		&unit.UnitName, &unit.UnitType, &unit.ResidentUsername,
		&unit.ResidentPasswordHash, &status, &unit.DriveFolderID,
		&unit.CreatedAt, &unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	unit.Status = domain.UnitStatus(status)
	return &unit, nil
}
