package dto

import (
	"github.com/dallyhq/dally_backend/internal/core/domain"
)

// RegisterUserRequest creates an account.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse renders a user without credentials.
type UserResponse struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	IsPro  bool   `json:"isPro"`
}

// LoginResponse carries the issued access token and its subject.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its response form.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
		IsPro:  u.IsPro,
	}
}
