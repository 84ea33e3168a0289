package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/internal/metrics"
)

// Summarize derives the aggregate clearance state from a student's status
// set. A single rejection marks the student rejected regardless of how many
// other departments have approved.
func Summarize(statuses []domain.ClearanceStatus) domain.ClearanceSummary {
	summary := domain.ClearanceSummary{
		TotalDepartments:   len(statuses),
		PendingDepartments: []domain.ClearanceDepartment{},
	}

	rejected := false
	for _, s := range statuses {
		switch s.Status {
		case domain.ClearanceApproved:
			summary.ApprovedCount++
		case domain.ClearanceRejected:
			rejected = true
			summary.PendingDepartments = append(summary.PendingDepartments, s.Department)
		default:
			summary.PendingDepartments = append(summary.PendingDepartments, s.Department)
		}
	}

	switch {
	case len(statuses) == 0:
		summary.Overall = domain.OverallNotStarted
	case rejected:
		summary.Overall = domain.OverallRejected
	case summary.ApprovedCount == len(statuses):
		summary.Overall = domain.OverallFullyCleared
	case summary.ApprovedCount > 0:
		summary.Overall = domain.OverallPartiallyCleared
	default:
		summary.Overall = domain.OverallPending
	}

	if summary.TotalDepartments > 0 {
		summary.Percentage = float64(summary.ApprovedCount) / float64(summary.TotalDepartments) * 100
	}
	return summary
}

type ClearanceService struct {
	userRepo      ports.UserRepository
	studentRepo   ports.StudentRepository
	clearanceRepo ports.ClearanceRepository
}

var _ ports.ClearanceService = (*ClearanceService)(nil)

func NewClearanceService(
	userRepo ports.UserRepository,
	studentRepo ports.StudentRepository,
	clearanceRepo ports.ClearanceRepository,
) *ClearanceService {
	return &ClearanceService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		clearanceRepo: clearanceRepo,
	}
}

// UpdateStatus applies a new per-department status on behalf of the actor.
// Staff may only update the clearance department they are assigned to;
// admins are unscoped.
func (s *ClearanceService) UpdateStatus(ctx context.Context, in ports.UpdateClearanceInput, actorUsername string) (*domain.ClearanceStatus, error) {
	actor, err := s.userRepo.GetByUsername(ctx, actorUsername)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		if actor.Role != domain.RoleStaff || actor.ClearanceDepartment != in.Department {
			return nil, fmt.Errorf("staff %q may not update %s clearance: %w", actorUsername, in.Department, domain.ErrForbidden)
		}
	}

	student, err := s.studentRepo.GetByMatricNo(ctx, in.MatricNo)
	if err != nil {
		return nil, err
	}

	record, err := s.clearanceRepo.GetStatus(ctx, student.ID, in.Department)
	if err != nil {
		return nil, err
	}

	record.Status = in.Status
	if in.Remarks != "" {
		record.Remarks = in.Remarks
	}

	payload, err := json.Marshal(ports.ClearanceUpdatedEvent{
		MatricNo:   in.MatricNo,
		Department: string(in.Department),
		Status:     string(in.Status),
		Remarks:    record.Remarks,
		UpdatedBy:  actorUsername,
	})
	if err != nil {
		return nil, err
	}

	if err := s.clearanceRepo.Save(ctx, *record, payload); err != nil {
		return nil, err
	}

	metrics.ClearanceUpdates.WithLabelValues(string(in.Department), string(in.Status)).Inc()
	return record, nil
}

func (s *ClearanceService) IsFullyCleared(ctx context.Context, matricNo string) (bool, error) {
	student, err := s.studentRepo.GetByMatricNo(ctx, matricNo)
	if err != nil {
		return false, err
	}
	statuses, err := s.clearanceRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return false, err
	}
	return Summarize(statuses).Overall == domain.OverallFullyCleared, nil
}

// Overview aggregates clearance progress across all students for the admin
// dashboard.
func (s *ClearanceService) Overview(ctx context.Context) (*ports.ClearanceOverview, error) {
	students, err := s.studentRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	byStudent, err := s.clearanceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overview := &ports.ClearanceOverview{
		TotalStudents: len(students),
		Summary: map[domain.OverallClearance]int{
			domain.OverallFullyCleared:     0,
			domain.OverallPartiallyCleared: 0,
			domain.OverallPending:          0,
			domain.OverallRejected:         0,
			domain.OverallNotStarted:       0,
		},
		DepartmentBreakdown: make(map[domain.ClearanceDepartment]ports.DepartmentBreakdown),
	}
	for _, dept := range domain.ClearanceDepartments() {
		overview.DepartmentBreakdown[dept] = ports.DepartmentBreakdown{}
	}

	for _, student := range students {
		statuses := byStudent[student.ID]
		overview.Summary[Summarize(statuses).Overall]++

		for _, status := range statuses {
			breakdown := overview.DepartmentBreakdown[status.Department]
			switch status.Status {
			case domain.ClearanceApproved:
				breakdown.Approved++
			case domain.ClearanceRejected:
				breakdown.Rejected++
			default:
				breakdown.Pending++
			}
			overview.DepartmentBreakdown[status.Department] = breakdown
		}
	}

	return overview, nil
}
