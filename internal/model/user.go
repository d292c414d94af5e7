package model

import "time"

// User represents an account credential in the auth database.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents credential data safe for API responses (no hash).
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SignupResponse is returned by POST /api/auth/signup.
type SignupResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// LoginUser is the user view embedded in a login response. Profile is a
// best-effort embed fetched from the user service and may be null.
type LoginUser struct {
	ID      int64            `json:"id"`
	Email   string           `json:"email"`
	Profile *ProfileResponse `json:"profile"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// VerifyResponse is returned by GET /api/auth/verify.
type VerifyResponse struct {
	User UserResponse `json:"user"`
}
