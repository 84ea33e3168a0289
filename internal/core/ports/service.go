package ports

import (
	"context"

	"github.com/funaab-ict/clearance-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type CreateUserInput struct {
	Username            string
	Password            string
	Email               string
	FullName            string
	Role                domain.Role
	Department          domain.Department
	ClearanceDepartment domain.ClearanceDepartment
}

type UpdateUserInput struct {
	Email               *string
	FullName            *string
	Password            *string
	Role                *domain.Role
	Department          *domain.Department
	ClearanceDepartment *domain.ClearanceDepartment
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByTagID(ctx context.Context, tagID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	// Delete refuses to remove the actor's own account.
	Delete(ctx context.Context, id, actorUsername string) (*domain.User, error)
}

type CreateStudentInput struct {
	MatricNo   string
	FullName   string
	Email      string
	Department domain.Department
	Password   string
}

type UpdateStudentInput struct {
	FullName   *string
	Email      *string
	Department *domain.Department
}

// StudentRecord is the full read model for a student: profile, per-department
// statuses, the derived summary and the linked tag if any.
type StudentRecord struct {
	domain.Student
	ClearanceStatuses []domain.ClearanceStatus `json:"clearance_statuses"`
	Summary           domain.ClearanceSummary  `json:"clearance_summary"`
	Tag               *domain.RFIDTag          `json:"rfid_tag,omitempty"`
}

type StudentService interface {
	Create(ctx context.Context, in CreateStudentInput) (*StudentRecord, error)
	GetByID(ctx context.Context, id string) (*StudentRecord, error)
	GetByMatricNo(ctx context.Context, matricNo string) (*StudentRecord, error)
	GetByTagID(ctx context.Context, tagID string) (*StudentRecord, error)
	List(ctx context.Context, offset, limit int) ([]StudentRecord, error)
	Update(ctx context.Context, id string, in UpdateStudentInput) (*StudentRecord, error)
	Delete(ctx context.Context, id string) (*domain.Student, error)
}

type DeviceService interface {
	Register(ctx context.Context, name, location string, dept domain.Department) (*domain.Device, error)
	List(ctx context.Context) ([]domain.Device, error)
	Delete(ctx context.Context, id string) (*domain.Device, error)
}

type UpdateClearanceInput struct {
	MatricNo   string
	Department domain.ClearanceDepartment
	Status     domain.ClearanceState
	Remarks    string
}

// DepartmentBreakdown counts status rows per state within one clearance
// department.
type DepartmentBreakdown struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type ClearanceOverview struct {
	TotalStudents       int                                                `json:"total_students"`
	Summary             map[domain.OverallClearance]int                    `json:"clearance_summary"`
	DepartmentBreakdown map[domain.ClearanceDepartment]DepartmentBreakdown `json:"department_breakdown"`
}

type ClearanceService interface {
	UpdateStatus(ctx context.Context, in UpdateClearanceInput, actorUsername string) (*domain.ClearanceStatus, error)
	IsFullyCleared(ctx context.Context, matricNo string) (bool, error)
	Overview(ctx context.Context) (*ClearanceOverview, error)
}

// ScanService brokers a single pending scan between an armed device and the
// operator who armed it.
type ScanService interface {
	Arm(ctx context.Context, deviceID, operator string) error
	ReportScan(device domain.Device, tagID string) error
	Retrieve(operator string) (string, error)
}

type LinkTagInput struct {
	TagID    string
	MatricNo string
	Username string
}

// TagResolution is the kiosk-facing view of a scanned tag.
type TagResolution struct {
	Status          string `json:"status"`
	FullName        string `json:"full_name,omitempty"`
	EntityType      string `json:"entity_type,omitempty"`
	ClearanceStatus string `json:"clearance_status,omitempty"`
}

type TagService interface {
	Link(ctx context.Context, in LinkTagInput) (*domain.RFIDTag, error)
	Unlink(ctx context.Context, tagID string) (*domain.RFIDTag, error)
	Resolve(ctx context.Context, tagID string) (TagResolution, error)
}
