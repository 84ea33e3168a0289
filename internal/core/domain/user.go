package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Department is the academic department a user or student belongs to.
type Department string

const (
	DeptComputerScience Department = "Computer Science"
	DeptEngineering     Department = "Engineering"
	DeptBusinessAdmin   Department = "Business Administration"
	DeptLaw             Department = "Law"
	DeptMedicine        Department = "Medicine"
)

type User struct {
	ID                  string              `json:"id"`
	Username            string              `json:"username"`
	Email               string              `json:"email"`
	FullName            string              `json:"full_name"`
	HashedPassword      string              `json:"-"`
	Role                Role                `json:"role"`
	Department          Department          `json:"department,omitempty"`
	ClearanceDepartment ClearanceDepartment `json:"clearance_department,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
}
