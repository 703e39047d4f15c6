package db

import (
	"time"

	"github.com/google/uuid"
)

// UserType constants for the two account roles
const (
	UserTypeJobseeker = "jobseeker"
	UserTypeCompany   = "company"
)

// User represents an account on the board
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	UserType     string    `json:"user_type"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidUserType reports whether t is a known account role
func ValidUserType(t string) bool {
	return t == UserTypeJobseeker || t == UserTypeCompany
}
