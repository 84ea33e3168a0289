package domain

import "time"

// Student is not directly login-capable; login is proxied through a paired
// User record whose username equals the student's matriculation number.
type Student struct {
	ID         string     `json:"id"`
	MatricNo   string     `json:"matric_no"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	CreatedAt  time.Time  `json:"created_at"`
}
