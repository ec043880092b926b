package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure StaffStore implements the interface.
var _ driven.StaffStore = (*StaffStore)(nil)

// StaffStore implements driven.StaffStore using PostgreSQL.
type StaffStore struct {
	db *DB
}

// NewStaffStore creates a new PostgreSQL-backed staff store.
func NewStaffStore(db *DB) *StaffStore {
	return &StaffStore{db: db}
}

// Save stores a new staff record or updates an existing one.
func (s *StaffStore) Save(ctx context.Context, staff *domain.StaffRecord) error {
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO staff (id, unit_id, society_id, name, role, phone, drive_folder_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (unit_id, id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			phone = EXCLUDED.phone,
			drive_folder_id = EXCLUDED.drive_folder_id
	`
	_, err := s.db.ExecContext(ctx, query,
		staff.ID, staff.UnitID, staff.SocietyID, staff.Name,
		staff.Role, staff.Phone, staff.DriveFolderID, staff.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save staff: %w", err)
	}
	return nil
}

// Get retrieves an active staff record by unit and staff id.
func (s *StaffStore) Get(ctx context.Context, unitID, staffID string) (*domain.StaffRecord, error) {
	query := `
		SELECT id, unit_id, society_id, name, role, phone, drive_folder_id, created_at
		FROM staff
		WHERE unit_id = $1 AND id = $2
	`
	var staff domain.StaffRecord
	err := s.db.QueryRowContext(ctx, query, unitID, staffID).Scan(
		&staff.ID, &staff.UnitID, &staff.SocietyID, &staff.Name,
		&staff.Role, &staff.Phone, &staff.DriveFolderID, &staff.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &staff, nil
}

// ListByUnit retrieves all active staff records of a unit.
func (s *StaffStore) ListByUnit(ctx context.Context, unitID string) ([]*domain.StaffRecord, error) {
	query := `
		SELECT id, unit_id, society_id, name, role, phone, drive_folder_id, created_at
		FROM staff
		WHERE unit_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var records []*domain.StaffRecord
	for rows.Next() {
		var staff domain.StaffRecord
		if err := rows.Scan(
			&staff.ID, &staff.UnitID, &staff.SocietyID, &staff.Name,
			&staff.Role, &staff.Phone, &staff.DriveFolderID, &staff.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		records = append(records, &staff)
	}
	return records, rows.Err()
}

// Archive copies the active record into archived_staff with a server
// timestamp and deletes the original, in one transaction.
func (s *StaffStore) Archive(ctx context.Context, unitID, staffID string, driveArchived bool) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		copyQuery := `
			INSERT INTO archived_staff (id, unit_id, society_id, name, role, phone,
				drive_folder_id, created_at, archived_at, drive_archived)
			SELECT id, unit_id, society_id, name, role, phone,
				drive_folder_id, created_at, NOW(), $3
			FROM staff
			WHERE unit_id = $1 AND id = $2
			ON CONFLICT (unit_id, id) DO UPDATE SET
				archived_at = EXCLUDED.archived_at,
				drive_archived = EXCLUDED.drive_archived
		`
		result, err := tx.ExecContext(ctx, copyQuery, unitID, staffID, driveArchived)
		if err != nil {
			return fmt.Errorf("copy staff to archive: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("copy staff to archive: %w", err)
		}
		if rows == 0 {
			return domain.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM staff WHERE unit_id = $1 AND id = $2`, unitID, staffID,
		); err != nil {
			return fmt.Errorf("delete active staff: %w", err)
		}
		return nil
	})
}
