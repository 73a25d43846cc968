package models

import "time"

// User represents a user account in the system.
type User struct {
	UserID       int       `json:"userId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}
