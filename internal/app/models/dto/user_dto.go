package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/web79/smiportal/internal/app/models"
)

// CreateUserRequest is the payload for creating a staff account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"staff@web79.ng"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required,notblank" example:"Bola Ade"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=super-admin admin instructor" example:"admin"`
	Branch   string `json:"branch" binding:"required,notblank" example:"ibadan"`
}

// UserResponse represents a staff account without credentials
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	Role      models.Role `json:"role"`
	Branch    string      `json:"branch"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserResponse maps a user model to its public shape
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Branch:    u.Branch,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a list of users
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
