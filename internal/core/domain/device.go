package domain

import "time"

// Device is a registered kiosk/reader. Name and location are unique; the API
// key is its hardware credential and is immutable once issued.
type Device struct {
	ID         string     `json:"id"`
	Name       string     `json:"device_name"`
	Location   string     `json:"location"`
	Department Department `json:"department"`
	APIKey     string     `json:"api_key"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}
