package mocks

import (
	"context"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type savedStatus struct {
	Status  domain.ClearanceStatus
	Payload []byte
}

type MockClearanceRepository struct {
	mu       sync.RWMutex
	statuses map[string][]domain.ClearanceStatus // keyed by student id

	SaveCalls []savedStatus

	GetError  error
	SaveError error
}

var _ ports.ClearanceRepository = (*MockClearanceRepository)(nil)

func NewMockClearanceRepository() *MockClearanceRepository {
	return &MockClearanceRepository{statuses: make(map[string][]domain.ClearanceStatus)}
}

func (m *MockClearanceRepository) SeedStatuses(studentID string, statuses []domain.ClearanceStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[studentID] = statuses
}

// LastSave returns the most recent Save call for assertions.
func (m *MockClearanceRepository) LastSave() (domain.ClearanceStatus, []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	last := m.SaveCalls[len(m.SaveCalls)-1]
	return last.Status, last.Payload
}

func (m *MockClearanceRepository) GetStatus(ctx context.Context, studentID string, dept domain.ClearanceDepartment) (*domain.ClearanceStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, status := range m.statuses[studentID] {
		if status.Department == dept {
			return &status, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockClearanceRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.ClearanceStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.statuses[studentID], nil
}

func (m *MockClearanceRepository) ListAll(ctx context.Context) (map[string][]domain.ClearanceStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	grouped := make(map[string][]domain.ClearanceStatus, len(m.statuses))
	for studentID, statuses := range m.statuses {
		grouped[studentID] = statuses
	}
	return grouped, nil
}

func (m *MockClearanceRepository) Save(ctx context.Context, status domain.ClearanceStatus, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, savedStatus{status, outboxPayload})
	if m.SaveError != nil {
		return m.SaveError
	}
	statuses := m.statuses[status.StudentID]
	for i, existing := range statuses {
		if existing.ID == status.ID {
			statuses[i] = status
			return nil
		}
	}
	m.statuses[status.StudentID] = append(statuses, status)
	return nil
}
