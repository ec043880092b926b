package mocks

import (
	"context"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockUnitStore is a mock implementation of UnitStore for testing
type MockUnitStore struct {
	mu    sync.Mutex
	wings map[string][]*domain.Wing
	units map[string]*domain.Unit

	// SaveUnitsErr forces SaveUnits to fail when set
	SaveUnitsErr error
}

// NewMockUnitStore creates a new MockUnitStore
func NewMockUnitStore() *MockUnitStore {
	return &MockUnitStore{
		wings: make(map[string][]*domain.Wing),
		units: make(map[string]*domain.Unit),
	}
}

func (m *MockUnitStore) ReplaceWings(ctx context.Context, societyID string, wings []*domain.Wing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wings[societyID] = wings
	return nil
}

func (m *MockUnitStore) GetWings(ctx context.Context, societyID string) ([]*domain.Wing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wings[societyID], nil
}

func (m *MockUnitStore) SaveUnits(ctx context.Context, societyID string, units []*domain.Unit) (int, error) {
	if m.SaveUnitsErr != nil {
		return 0, m.SaveUnitsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, unit := range units {
		copied := *unit
		m.units[unit.ID] = &copied
	}
	count := 0
	for _, unit := range m.units {
		if unit.SocietyID == societyID {
			count++
		}
	}
	return count, nil
}

func (m *MockUnitStore) ListUnits(ctx context.Context, societyID, wingID string) ([]*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Unit
	for _, unit := range m.units {
		if unit.SocietyID != societyID {
			continue
		}
		if wingID != "" && unit.WingID != wingID {
			continue
		}
		copied := *unit
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockUnitStore) GetUnit(ctx context.Context, unitID string) (*domain.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	unit, ok := m.units[unitID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *unit
	return &copied, nil
}
