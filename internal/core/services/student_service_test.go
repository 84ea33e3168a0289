package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/internal/core/services"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

func studentFixture(t *testing.T) (*services.StudentService, *mocks.MockStudentRepository, *mocks.MockClearanceRepository, *mocks.MockTagRepository) {
	t.Helper()
	studentRepo := mocks.NewMockStudentRepository()
	userRepo := mocks.NewMockUserRepository()
	clearanceRepo := mocks.NewMockClearanceRepository()
	tagRepo := mocks.NewMockTagRepository()
	service := services.NewStudentService(studentRepo, userRepo, clearanceRepo, tagRepo)
	return service, studentRepo, clearanceRepo, tagRepo
}

func TestStudentService_Create(t *testing.T) {
	service, studentRepo, _, _ := studentFixture(t)

	record, err := service.Create(context.Background(), ports.CreateStudentInput{
		MatricNo:   "20201234",
		FullName:   "Ada Bello",
		Email:      "ada@students.example.edu",
		Department: domain.DeptComputerScience,
		Password:   "secret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	student, pairedUser, statuses, payload := studentRepo.LastCreate()

	// The paired login account carries the matric number as username.
	if pairedUser.Username != student.MatricNo {
		t.Errorf("paired username: expected %q, got %q", student.MatricNo, pairedUser.Username)
	}
	if pairedUser.Role != domain.RoleStudent {
		t.Errorf("paired role: expected student, got %s", pairedUser.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pairedUser.HashedPassword), []byte("secret-pass")); err != nil {
		t.Error("paired user password hash does not verify")
	}

	if len(statuses) != len(domain.ClearanceDepartments()) {
		t.Fatalf("expected %d status rows, got %d", len(domain.ClearanceDepartments()), len(statuses))
	}
	seen := make(map[domain.ClearanceDepartment]bool)
	for _, status := range statuses {
		if status.Status != domain.ClearancePending {
			t.Errorf("%s: initial status must be pending, got %s", status.Department, status.Status)
		}
		if status.StudentID != student.ID {
			t.Errorf("%s: status row not bound to student", status.Department)
		}
		seen[status.Department] = true
	}
	if len(seen) != len(domain.ClearanceDepartments()) {
		t.Error("expected one status row per clearance department")
	}

	var evt ports.StudentCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		t.Fatalf("outbox payload is not a student event: %v", err)
	}
	if evt.MatricNo != "20201234" {
		t.Errorf("unexpected event payload: %+v", evt)
	}

	if record.Summary.Overall != domain.OverallPending {
		t.Errorf("new student summary: expected pending, got %s", record.Summary.Overall)
	}
}

func TestStudentService_CreateDuplicateMatric(t *testing.T) {
	service, studentRepo, _, _ := studentFixture(t)
	studentRepo.SeedStudent(&domain.Student{ID: "stu-1", MatricNo: "20201234"})

	_, err := service.Create(context.Background(), ports.CreateStudentInput{
		MatricNo: "20201234", FullName: "X", Email: "x@example.edu", Password: "p",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestStudentService_GetByMatricNoAssemblesRecord(t *testing.T) {
	service, studentRepo, clearanceRepo, tagRepo := studentFixture(t)

	studentRepo.SeedStudent(&domain.Student{ID: "stu-1", MatricNo: "20201234", FullName: "Ada Bello"})
	clearanceRepo.SeedStatuses("stu-1", []domain.ClearanceStatus{
		{StudentID: "stu-1", Department: domain.ClearanceLibrary, Status: domain.ClearanceApproved},
		{StudentID: "stu-1", Department: domain.ClearanceBursary, Status: domain.ClearancePending},
	})
	tagRepo.SeedTag(&domain.RFIDTag{TagID: "TAG42", StudentID: "stu-1"})

	record, err := service.GetByMatricNo(context.Background(), "20201234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Summary.Overall != domain.OverallPartiallyCleared {
		t.Errorf("summary: expected partially_cleared, got %s", record.Summary.Overall)
	}
	if record.Tag == nil || record.Tag.TagID != "TAG42" {
		t.Errorf("expected linked tag on record, got %+v", record.Tag)
	}
}

func TestStudentService_RecordWithoutTag(t *testing.T) {
	service, studentRepo, _, _ := studentFixture(t)
	studentRepo.SeedStudent(&domain.Student{ID: "stu-1", MatricNo: "20201234"})

	record, err := service.GetByID(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("a missing tag must not fail the lookup: %v", err)
	}
	if record.Tag != nil {
		t.Errorf("expected nil tag, got %+v", record.Tag)
	}
}

func TestStudentService_Delete(t *testing.T) {
	service, studentRepo, _, _ := studentFixture(t)
	studentRepo.SeedStudent(&domain.Student{ID: "stu-1", MatricNo: "20201234"})

	student, err := service.Delete(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.MatricNo != "20201234" {
		t.Errorf("expected deleted student in response, got %+v", student)
	}

	if _, err := service.Delete(context.Background(), "stu-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
