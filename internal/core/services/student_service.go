package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

type StudentService struct {
	studentRepo   ports.StudentRepository
	userRepo      ports.UserRepository
	clearanceRepo ports.ClearanceRepository
	tagRepo       ports.TagRepository
}

var _ ports.StudentService = (*StudentService)(nil)

func NewStudentService(
	studentRepo ports.StudentRepository,
	userRepo ports.UserRepository,
	clearanceRepo ports.ClearanceRepository,
	tagRepo ports.TagRepository,
) *StudentService {
	return &StudentService{
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		clearanceRepo: clearanceRepo,
		tagRepo:       tagRepo,
	}
}

// Create registers a student together with their paired login user (username
// is the matriculation number) and one pending clearance row per department,
// all in a single transaction.
func (s *StudentService) Create(ctx context.Context, in ports.CreateStudentInput) (*ports.StudentRecord, error) {
	if _, err := s.studentRepo.GetByMatricNo(ctx, in.MatricNo); err == nil {
		return nil, fmt.Errorf("matriculation number %q already registered: %w", in.MatricNo, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	student := domain.Student{
		ID:         uuid.NewString(),
		MatricNo:   in.MatricNo,
		FullName:   in.FullName,
		Email:      in.Email,
		Department: in.Department,
		CreatedAt:  now,
	}
	pairedUser := domain.User{
		ID:             uuid.NewString(),
		Username:       in.MatricNo,
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: string(hashed),
		Role:           domain.RoleStudent,
		Department:     in.Department,
		CreatedAt:      now,
	}

	statuses := make([]domain.ClearanceStatus, 0, len(domain.ClearanceDepartments()))
	for _, dept := range domain.ClearanceDepartments() {
		statuses = append(statuses, domain.ClearanceStatus{
			ID:         uuid.NewString(),
			StudentID:  student.ID,
			Department: dept,
			Status:     domain.ClearancePending,
		})
	}

	payload, err := json.Marshal(ports.StudentCreatedEvent{
		StudentID: student.ID,
		MatricNo:  student.MatricNo,
		FullName:  student.FullName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student, pairedUser, statuses, payload); err != nil {
		return nil, err
	}

	return &ports.StudentRecord{
		Student:           student,
		ClearanceStatuses: statuses,
		Summary:           Summarize(statuses),
	}, nil
}

func (s *StudentService) GetByID(ctx context.Context, id string) (*ports.StudentRecord, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, student)
}

func (s *StudentService) GetByMatricNo(ctx context.Context, matricNo string) (*ports.StudentRecord, error) {
	student, err := s.studentRepo.GetByMatricNo(ctx, matricNo)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, student)
}

func (s *StudentService) GetByTagID(ctx context.Context, tagID string) (*ports.StudentRecord, error) {
	student, err := s.studentRepo.GetByTagID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, student)
}

func (s *StudentService) List(ctx context.Context, offset, limit int) ([]ports.StudentRecord, error) {
	students, err := s.studentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	records := make([]ports.StudentRecord, 0, len(students))
	for i := range students {
		record, err := s.assemble(ctx, &students[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (s *StudentService) Update(ctx context.Context, id string, in ports.UpdateStudentInput) (*ports.StudentRecord, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		student.FullName = *in.FullName
	}
	if in.Email != nil {
		student.Email = *in.Email
	}
	if in.Department != nil {
		student.Department = *in.Department
	}
	if err := s.studentRepo.Update(ctx, *student); err != nil {
		return nil, err
	}
	return s.assemble(ctx, student)
}

// Delete removes the student together with the paired user account, any
// linked tag and all clearance rows.
func (s *StudentService) Delete(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) assemble(ctx context.Context, student *domain.Student) (*ports.StudentRecord, error) {
	statuses, err := s.clearanceRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	record := &ports.StudentRecord{
		Student:           *student,
		ClearanceStatuses: statuses,
		Summary:           Summarize(statuses),
	}

	tag, err := s.tagRepo.GetByStudentID(ctx, student.ID)
	if err == nil {
		record.Tag = tag
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return record, nil
}
