package dto

import (
	"time"

	"github.com/jobhive/auth-service/internal/application/identity"
)

// UserView is the sanitized account payload. The password hash never
// appears in any response.
type UserView struct {
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func ViewOf(v identity.AccountView) UserView {
	return UserView{
		Role:     string(v.Role),
		Verified: v.Verified,
		ID:       v.ID,
		Name:     v.Name,
		Email:    v.Email,
	}
}

// MessageResponse is the platform's generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type RegisterResponse struct {
	Message string   `json:"message"`
	Success bool     `json:"success"`
	User    UserView `json:"user"`
}

// LoginResponse carries the session token with its Bearer prefix and the
// token's own expiry. There is exactly one expiry timestamp.
type LoginResponse struct {
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
	ExpiryDate time.Time `json:"expiryDate"`
	Message    string    `json:"message"`
	Success    bool      `json:"success"`
}

type MeResponse struct {
	User    UserView `json:"user"`
	Success bool     `json:"success"`
}

type UpdateProfileResponse struct {
	Message string   `json:"message"`
	Success bool     `json:"success"`
	User    UserView `json:"user"`
}
