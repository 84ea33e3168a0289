package domain

// ClearanceDepartment is one of the fixed administrative units that must each
// approve a student before they are fully cleared.
type ClearanceDepartment string

const (
	ClearanceLibrary        ClearanceDepartment = "Library"
	ClearanceStudentAffairs ClearanceDepartment = "Student Affairs"
	ClearanceBursary        ClearanceDepartment = "Bursary"
	ClearanceAcademic       ClearanceDepartment = "Academic Affairs"
	ClearanceHealthCenter   ClearanceDepartment = "Health Center"
)

// ClearanceDepartments enumerates the full set, in the order status rows are
// created for a new student. The set is fixed: rows are created once per
// student and never added to or removed from afterwards.
func ClearanceDepartments() []ClearanceDepartment {
	return []ClearanceDepartment{
		ClearanceLibrary,
		ClearanceStudentAffairs,
		ClearanceBursary,
		ClearanceAcademic,
		ClearanceHealthCenter,
	}
}

type ClearanceState string

const (
	ClearancePending  ClearanceState = "pending"
	ClearanceApproved ClearanceState = "approved"
	ClearanceRejected ClearanceState = "rejected"
)

// ClearanceStatus is one row per (student, clearance department) pair.
type ClearanceStatus struct {
	ID         string              `json:"id"`
	StudentID  string              `json:"student_id"`
	Department ClearanceDepartment `json:"department"`
	Status     ClearanceState      `json:"status"`
	Remarks    string              `json:"remarks,omitempty"`
}

type OverallClearance string

const (
	OverallNotStarted       OverallClearance = "not_started"
	OverallRejected         OverallClearance = "rejected"
	OverallFullyCleared     OverallClearance = "fully_cleared"
	OverallPartiallyCleared OverallClearance = "partially_cleared"
	OverallPending          OverallClearance = "pending"
)

// ClearanceSummary aggregates a student's per-department statuses.
type ClearanceSummary struct {
	Overall            OverallClearance      `json:"overall_status"`
	ApprovedCount      int                   `json:"approved_count"`
	TotalDepartments   int                   `json:"total_departments"`
	Percentage         float64               `json:"percentage"`
	PendingDepartments []ClearanceDepartment `json:"pending_departments"`
}
