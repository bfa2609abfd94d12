package dto

import "time"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Branch   string `json:"branch" binding:"required,notblank" example:"ibadan"`
}

// LoginResponse carries the issued token and the authenticated account
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
