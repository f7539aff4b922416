package dto

import (
	"github.com/edujournal/journal_backend/internal/core/domain"
)

// RegisterRequest is the body for POST /user/register.
// Role is optional and defaults to STUDENT; it is normalized to uppercase
// before validation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// LoginRequest is the body for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the authorization code from the Google OAuth
// redirect, exchanged server-side for an ID token.
type GoogleLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserResponse is the sanitized user projection. The password hash is never
// part of any response.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// LoginResponse wraps the sanitized user plus the signed access token.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ToUserResponse converts a domain User to its sanitized projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	}
}
