package ports

import (
	"context"
)

const (
	EventClearanceUpdated = "clearance.updated"
	EventStudentCreated   = "student.created"
)

type ClearanceUpdatedEvent struct {
	MatricNo   string `json:"matric_no"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
	UpdatedBy  string `json:"updated_by"`
}

type StudentCreatedEvent struct {
	StudentID string `json:"student_id"`
	MatricNo  string `json:"matric_no"`
	FullName  string `json:"full_name"`
}

type ClearanceEventPublisher interface {
	PublishClearanceUpdated(ctx context.Context, evt ClearanceUpdatedEvent) error
	PublishStudentCreated(ctx context.Context, evt StudentCreatedEvent) error
}
