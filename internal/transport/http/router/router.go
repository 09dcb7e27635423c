package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type AuthHandler interface {
	// Registration, one route per role
	RegisterEmployer(w http.ResponseWriter, r *http.Request)
	RegisterEmployee(w http.ResponseWriter, r *http.Request)
	RegisterOneTime(w http.ResponseWriter, r *http.Request)

	// Sessions
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	// Account management
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)

	// Email verification
	VerifyEmailConfirm(w http.ResponseWriter, r *http.Request)

	// Role-gated
	EmployerArea(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Auth    AuthHandler
	Health  http.HandlerFunc
	Metrics http.Handler

	RequestIDMW func(http.Handler) http.Handler
	MetricsMW   func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler
	EmployerMW  func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.EmployerMW == nil {
		return nil, fmt.Errorf("nil Employer middleware")
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.MetricsMW != nil {
		r.Use(deps.MetricsMW)
	}

	r.Get("/healthz", deps.Health)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	r.Route("/auth/v1", func(r chi.Router) {
		// --- Registration ---
		r.Post("/register/employer", deps.Auth.RegisterEmployer)
		r.Post("/register/employee", deps.Auth.RegisterEmployee)
		r.Post("/register/one-time", deps.Auth.RegisterOneTime)

		// --- Sessions ---
		r.Post("/login", deps.Auth.Login)
		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)

		// --- Account management ---
		r.With(deps.AuthMW).Patch("/me", deps.Auth.UpdateProfile)
		r.With(deps.AuthMW).Post("/password/change", deps.Auth.ChangePassword)

		// --- Email verification ---
		r.Post("/verify-email/confirm", deps.Auth.VerifyEmailConfirm)

		// --- Role-gated ---
		r.With(deps.AuthMW, deps.EmployerMW).Get("/employer", deps.Auth.EmployerArea)
	})

	return r, nil
}
