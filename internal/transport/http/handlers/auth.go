package http_handlers

import (
	"net/http"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
	"github.com/jobhive/auth-service/internal/logger"
	"github.com/jobhive/auth-service/internal/transport/http/dto"
	"github.com/jobhive/auth-service/internal/transport/http/middleware"
	"github.com/jobhive/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *identity.Service
}

func NewAuthHandler(svc *identity.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// -------- Registration --------

func (h *AuthHandler) RegisterEmployer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleEmployer)
}

func (h *AuthHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleEmployee)
}

func (h *AuthHandler) RegisterOneTime(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, domain.RoleOneTime)
}

// register is shared by the three role routes; the route, not the body,
// decides the role.
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role domain.Role) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().
		Str("account_id", user.ID).
		Str("role", string(user.Role)).
		Msg("account_registered")

	response.WriteJSON(w, http.StatusCreated, dto.RegisterResponse{
		Message: "Registration successful.",
		Success: true,
		User:    dto.ViewOf(user),
	})
}

// -------- Login --------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().
		Str("account_id", res.Account.ID).
		Msg("account_logged_in")

	response.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Name:       res.Account.Name,
		Role:       string(res.Account.Role),
		Email:      res.Account.Email,
		Token:      res.Token,
		ExpiryDate: res.ExpiresAt,
		Message:    "login successful",
		Success:    true,
	})
}

// -------- Me --------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	user, err := h.svc.GetAccount(r.Context(), id.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.MeResponse{
		User:    dto.ViewOf(user),
		Success: true,
	})
}

// -------- Profile update --------

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), id.ID, identity.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().
		Str("account_id", user.ID).
		Msg("account_updated")

	response.WriteJSON(w, http.StatusOK, dto.UpdateProfileResponse{
		Message: "Records updated successfully.",
		Success: true,
		User:    dto.ViewOf(user),
	})
}

// -------- Password change --------

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	var req dto.ChangePasswordRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), id.ID, req.OldPassword, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	log := logger.WithCtx(r.Context())
	log.Info().
		Str("account_id", id.ID).
		Msg("password_changed")

	response.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "Password updated successfully.",
		Success: true,
	})
}

// -------- Email verification --------

func (h *AuthHandler) VerifyEmailConfirm(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailConfirmRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ConfirmVerification(r.Context(), req.Token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "Email verified.",
		Success: true,
	})
}

// -------- Role-gated probe --------

// EmployerArea is the admission check for employer-only surfaces. The
// RBAC middleware has already rejected everyone else by the time this
// runs.
func (h *AuthHandler) EmployerArea(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "Authorized.",
		Success: true,
	})
}
