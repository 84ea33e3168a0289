package domain

// RFIDTag is a physical credential identified by its hardware-assigned tag id.
// A tag is owned by at most one student or one user, never both.
type RFIDTag struct {
	TagID     string `json:"tag_id"`
	StudentID string `json:"student_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}
