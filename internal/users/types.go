package users

import "errors"

// Sentinel errors the handler maps to HTTP status codes
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterRequest represents the data needed to create a new account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the profile fields a user may change
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
	Level          *int    `json:"level"`
}

// CreateUserParams is the repository-level shape for inserting a user
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Roles        []string
}
