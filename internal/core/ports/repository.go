package ports

import (
	"context"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByTagID(ctx context.Context, tagID string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id string) error
}

type StudentRepository interface {
	// Create inserts the student, the paired login user and the initial
	// clearance status rows in a single transaction, together with an
	// outbox event row when payload is non-nil.
	Create(ctx context.Context, student domain.Student, pairedUser domain.User, statuses []domain.ClearanceStatus, outboxPayload []byte) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByMatricNo(ctx context.Context, matricNo string) (*domain.Student, error)
	GetByTagID(ctx context.Context, tagID string) (*domain.Student, error)
	List(ctx context.Context, offset, limit int) ([]domain.Student, error)
	Update(ctx context.Context, student domain.Student) error
	// Delete removes the student together with the paired user, any linked
	// tag and all clearance status rows.
	Delete(ctx context.Context, id string) error
}

type DeviceRepository interface {
	Create(ctx context.Context, device domain.Device) error
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	// GetByAPIKey resolves an active device only; inactive devices are
	// treated as absent.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Device, error)
	GetByName(ctx context.Context, name string) (*domain.Device, error)
	GetByLocation(ctx context.Context, location string) (*domain.Device, error)
	List(ctx context.Context, offset, limit int) ([]domain.Device, error)
	Delete(ctx context.Context, id string) error
}

type TagRepository interface {
	Get(ctx context.Context, tagID string) (*domain.RFIDTag, error)
	GetByStudentID(ctx context.Context, studentID string) (*domain.RFIDTag, error)
	Create(ctx context.Context, tag domain.RFIDTag) error
	Delete(ctx context.Context, tagID string) error
}

type ClearanceRepository interface {
	GetStatus(ctx context.Context, studentID string, dept domain.ClearanceDepartment) (*domain.ClearanceStatus, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.ClearanceStatus, error)
	// ListAll returns every status row grouped by student id, for the
	// dashboard overview.
	ListAll(ctx context.Context) (map[string][]domain.ClearanceStatus, error)
	// Save persists the status row and an outbox event row in one
	// transaction when payload is non-nil.
	Save(ctx context.Context, status domain.ClearanceStatus, outboxPayload []byte) error
}
