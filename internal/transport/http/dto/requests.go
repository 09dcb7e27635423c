package dto

import (
	"strings"

	"github.com/jobhive/auth-service/internal/domain"
)

// -------- Registration --------

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return validateStruct(r)
}

// -------- Login --------

// Either name or email identifies the account; the service treats them as
// an OR match.
type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" && r.Email == "" {
		return domain.ErrMissingField("name or email")
	}
	return nil
}

// -------- Profile update --------

// Nil fields are left untouched; present fields replace the stored value.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=3,max=50"`
	Email *string `json:"email" validate:"omitempty,email,max=254"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Email == nil {
		return domain.ErrMissingField("name or email")
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		r.Email = &trimmed
	}
	return validateStruct(r)
}

// -------- Password change --------

// NewPassword is deliberately not required here: the old password is
// verified first, and only then is an empty replacement rejected.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"omitempty,max=128"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validateStruct(r)
}

// -------- Email verification --------

type VerifyEmailConfirmRequest struct {
	Token string `json:"token" validate:"required"`
}

func (r *VerifyEmailConfirmRequest) Validate() error {
	return validateStruct(r)
}
