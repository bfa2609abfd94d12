package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines a staff account based on the 'users' table
type User struct {
	ID           uuid.UUID `json:"id" db:"id" example:"5b0f4f63-8a53-4c3e-9f0c-0d3f5d1b8c11"` // Unique identifier for the account
	Email        string    `json:"email" db:"email" example:"admin@web79.ng"`                  // Lower-cased login email
	PasswordHash string    `json:"-" db:"password_hash"`                                       // bcrypt hash, never serialized
	FullName     string    `json:"fullName" db:"full_name" example:"Bola Ade"`
	Role         Role      `json:"role" db:"role" example:"admin"`
	Branch       string    `json:"branch" db:"branch" example:"ibadan"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
