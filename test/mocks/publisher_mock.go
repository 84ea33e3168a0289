package mocks

import (
	"context"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type MockPublisher struct {
	mu sync.Mutex

	ClearanceUpdatedCalls []ports.ClearanceUpdatedEvent
	StudentCreatedCalls   []ports.StudentCreatedEvent

	PublishError error
}

var _ ports.ClearanceEventPublisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishClearanceUpdated(ctx context.Context, evt ports.ClearanceUpdatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.ClearanceUpdatedCalls = append(m.ClearanceUpdatedCalls, evt)
	return nil
}

func (m *MockPublisher) PublishStudentCreated(ctx context.Context, evt ports.StudentCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.StudentCreatedCalls = append(m.StudentCreatedCalls, evt)
	return nil
}
