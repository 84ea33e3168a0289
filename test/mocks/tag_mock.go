package mocks

import (
	"context"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type MockTagRepository struct {
	mu   sync.RWMutex
	tags map[string]*domain.RFIDTag

	CreateCalls []domain.RFIDTag
	DeleteCalls []string

	CreateError error
	GetError    error
	DeleteError error
}

var _ ports.TagRepository = (*MockTagRepository)(nil)

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{tags: make(map[string]*domain.RFIDTag)}
}

func (m *MockTagRepository) SeedTag(tag *domain.RFIDTag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tag.TagID] = tag
}

func (m *MockTagRepository) Get(ctx context.Context, tagID string) (*domain.RFIDTag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if tag, ok := m.tags[tagID]; ok {
		return tag, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockTagRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.RFIDTag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, tag := range m.tags {
		if tag.StudentID == studentID {
			return tag, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockTagRepository) Create(ctx context.Context, tag domain.RFIDTag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, tag)
	if m.CreateError != nil {
		return m.CreateError
	}
	// Mirror the unique owner columns in Postgres.
	for _, existing := range m.tags {
		sameStudent := tag.StudentID != "" && existing.StudentID == tag.StudentID
		sameUser := tag.UserID != "" && existing.UserID == tag.UserID
		if sameStudent || sameUser {
			return domain.ErrConflict
		}
	}
	m.tags[tag.TagID] = &tag
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, tagID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, tagID)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.tags[tagID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tags, tagID)
	return nil
}
