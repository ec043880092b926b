package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

type staffKey struct {
	unitID  string
	staffID string
}

// MockStaffStore is a mock implementation of StaffStore for testing
type MockStaffStore struct {
	mu       sync.Mutex
	active   map[staffKey]*domain.StaffRecord
	archived map[staffKey]*domain.StaffRecord

	// ArchiveErr forces Archive to fail when set
	ArchiveErr error
}

// NewMockStaffStore creates a new MockStaffStore
func NewMockStaffStore() *MockStaffStore {
	return &MockStaffStore{
		active:   make(map[staffKey]*domain.StaffRecord),
		archived: make(map[staffKey]*domain.StaffRecord),
	}
}

func (m *MockStaffStore) Save(ctx context.Context, staff *domain.StaffRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *staff
	m.active[staffKey{staff.UnitID, staff.ID}] = &copied
	return nil
}

func (m *MockStaffStore) Get(ctx context.Context, unitID, staffID string) (*domain.StaffRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.active[staffKey{unitID, staffID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (m *MockStaffStore) ListByUnit(ctx context.Context, unitID string) ([]*domain.StaffRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.StaffRecord
	for key, record := range m.active {
		if key.unitID == unitID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockStaffStore) Archive(ctx context.Context, unitID, staffID string, driveArchived bool) error {
	if m.ArchiveErr != nil {
		return m.ArchiveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := staffKey{unitID, staffID}
	record, ok := m.active[key]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	record.ArchivedAt = &now
	record.DriveArchived = driveArchived
	m.archived[key] = record
	delete(m.active, key)
	return nil
}

// Archived returns the archived record for a unit/staff pair, or nil
func (m *MockStaffStore) Archived(unitID, staffID string) *domain.StaffRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.archived[staffKey{unitID, staffID}]
}
