package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/internal/metrics"
)

const (
	TagStatusFound        = "found"
	TagStatusUnregistered = "unregistered"

	labelFullyCleared     = "Fully Cleared"
	labelPendingClearance = "Pending Clearance"
)

type TagService struct {
	tagRepo       ports.TagRepository
	userRepo      ports.UserRepository
	studentRepo   ports.StudentRepository
	clearanceRepo ports.ClearanceRepository
}

var _ ports.TagService = (*TagService)(nil)

func NewTagService(
	tagRepo ports.TagRepository,
	userRepo ports.UserRepository,
	studentRepo ports.StudentRepository,
	clearanceRepo ports.ClearanceRepository,
) *TagService {
	return &TagService{
		tagRepo:       tagRepo,
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		clearanceRepo: clearanceRepo,
	}
}

// Link binds a tag to exactly one student or user. It fails with a conflict
// when the tag is already linked or the target already owns a tag.
func (s *TagService) Link(ctx context.Context, in ports.LinkTagInput) (*domain.RFIDTag, error) {
	if (in.MatricNo == "") == (in.Username == "") {
		return nil, fmt.Errorf("provide either matric_no or username, not both: %w", domain.ErrConflict)
	}

	if _, err := s.tagRepo.Get(ctx, in.TagID); err == nil {
		return nil, fmt.Errorf("tag %q already in use: %w", in.TagID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	tag := domain.RFIDTag{TagID: in.TagID}
	if in.MatricNo != "" {
		student, err := s.studentRepo.GetByMatricNo(ctx, in.MatricNo)
		if err != nil {
			return nil, err
		}
		tag.StudentID = student.ID
	} else {
		user, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		tag.UserID = user.ID
	}

	// The one-tag-per-person rule is enforced by unique owner columns; a
	// violation surfaces as a conflict from the repository.
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Unlink releases a tag, making it available for re-assignment.
func (s *TagService) Unlink(ctx context.Context, tagID string) (*domain.RFIDTag, error) {
	tag, err := s.tagRepo.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		return nil, err
	}
	return tag, nil
}

// Resolve maps a scanned tag to a display-ready identity for kiosks. It
// never mutates state. Anything short of fully cleared is collapsed into a
// single "Pending Clearance" label for display.
func (s *TagService) Resolve(ctx context.Context, tagID string) (ports.TagResolution, error) {
	student, err := s.studentRepo.GetByTagID(ctx, tagID)
	if err == nil {
		statuses, err := s.clearanceRepo.ListByStudent(ctx, student.ID)
		if err != nil {
			return ports.TagResolution{}, err
		}
		label := labelPendingClearance
		if Summarize(statuses).Overall == domain.OverallFullyCleared {
			label = labelFullyCleared
		}
		metrics.TagResolutions.WithLabelValues("student").Inc()
		return ports.TagResolution{
			Status:          TagStatusFound,
			FullName:        student.FullName,
			EntityType:      "Student",
			ClearanceStatus: label,
		}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ports.TagResolution{}, err
	}

	user, err := s.userRepo.GetByTagID(ctx, tagID)
	if err == nil {
		metrics.TagResolutions.WithLabelValues("user").Inc()
		return ports.TagResolution{
			Status:          TagStatusFound,
			FullName:        user.FullName,
			EntityType:      capitalizeRole(user.Role),
			ClearanceStatus: "N/A",
		}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return ports.TagResolution{}, err
	}

	metrics.TagResolutions.WithLabelValues("unregistered").Inc()
	return ports.TagResolution{Status: TagStatusUnregistered}, nil
}

func capitalizeRole(role domain.Role) string {
	r := string(role)
	if r == "" {
		return ""
	}
	return strings.ToUpper(r[:1]) + r[1:]
}
