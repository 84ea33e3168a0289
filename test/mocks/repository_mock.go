// Package mocks provides in-memory implementations of the port interfaces so
// services can be tested without Postgres.
package mocks

import (
	"context"
	"sync"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by id
	tags  map[string]string       // tag id -> user id

	CreateCalls []domain.User
	UpdateCalls []domain.User
	DeleteCalls []string

	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
		tags:  make(map[string]string),
	}
}

func (m *MockUserRepository) SeedUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// SeedTag links a tag id to a seeded user for GetByTagID lookups.
func (m *MockUserRepository) SeedTag(tagID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tagID] = userID
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, user)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.users[user.ID] = &user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) GetByTagID(ctx context.Context, tagID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if userID, ok := m.tags[tagID]; ok {
		if user, ok := m.users[userID]; ok {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	var users []domain.User
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, user)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.users[user.ID] = &user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type studentCreate struct {
	Student    domain.Student
	PairedUser domain.User
	Statuses   []domain.ClearanceStatus
	Payload    []byte
}

type MockStudentRepository struct {
	mu       sync.RWMutex
	students map[string]*domain.Student
	tags     map[string]string // tag id -> student id

	CreateCalls []studentCreate
	DeleteCalls []string

	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

var _ ports.StudentRepository = (*MockStudentRepository)(nil)

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{
		students: make(map[string]*domain.Student),
		tags:     make(map[string]string),
	}
}

func (m *MockStudentRepository) SeedStudent(student *domain.Student) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[student.ID] = student
}

func (m *MockStudentRepository) SeedTag(tagID, studentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tagID] = studentID
}

// LastCreate returns the most recent Create call for assertions.
func (m *MockStudentRepository) LastCreate() (domain.Student, domain.User, []domain.ClearanceStatus, []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	last := m.CreateCalls[len(m.CreateCalls)-1]
	return last.Student, last.PairedUser, last.Statuses, last.Payload
}

func (m *MockStudentRepository) Create(ctx context.Context, student domain.Student, pairedUser domain.User, statuses []domain.ClearanceStatus, outboxPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, studentCreate{student, pairedUser, statuses, outboxPayload})
	if m.CreateError != nil {
		return m.CreateError
	}
	m.students[student.ID] = &student
	return nil
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if student, ok := m.students[id]; ok {
		return student, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockStudentRepository) GetByMatricNo(ctx context.Context, matricNo string) (*domain.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, student := range m.students {
		if student.MatricNo == matricNo {
			return student, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockStudentRepository) GetByTagID(ctx context.Context, tagID string) (*domain.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	if studentID, ok := m.tags[tagID]; ok {
		if student, ok := m.students[studentID]; ok {
			return student, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockStudentRepository) List(ctx context.Context, offset, limit int) ([]domain.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	var students []domain.Student
	for _, student := range m.students {
		students = append(students, *student)
	}
	return students, nil
}

func (m *MockStudentRepository) Update(ctx context.Context, student domain.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.students[student.ID] = &student
	return nil
}

func (m *MockStudentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.students[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.students, id)
	return nil
}
