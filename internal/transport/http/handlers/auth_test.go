package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/domain"
	"github.com/jobhive/auth-service/internal/infrastructure/memory"
	"github.com/jobhive/auth-service/internal/infrastructure/security"
	"github.com/jobhive/auth-service/internal/transport/http/middleware"
	"github.com/jobhive/auth-service/internal/transport/http/response"
	"github.com/jobhive/auth-service/internal/transport/http/router"
)

// capturePublisher records events so tests can pull the verification
// token out of the URL the mailer would have received.
type capturePublisher struct {
	mu     sync.Mutex
	events []identity.RegisteredEvent
}

func (p *capturePublisher) PublishRegistered(_ context.Context, evt identity.RegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *capturePublisher) last(t *testing.T) identity.RegisteredEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		t.Fatal("no events published")
	}
	return p.events[len(p.events)-1]
}

type testServer struct {
	handler http.Handler
	pub     *capturePublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	pub := &capturePublisher{}
	signer := security.NewJWTSigner("handler-test-secret", "jobhive-auth")
	svc := identity.NewService(
		memory.NewUserRepo(),
		security.NewBcryptHasher(4),
		signer,
		memory.NewOneTimeTokenStore(),
		pub,
		identity.Config{
			SessionTokenTTL:    15 * 24 * time.Hour,
			VerifyEmailBaseURL: "http://localhost:3000/verify-email?token=",
		},
	)

	h := NewAuthHandler(svc)
	mux, err := router.New(router.Deps{
		Auth:        h,
		Health:      Health,
		RequestIDMW: middleware.RequestID,
		AuthMW:      middleware.Auth(signer, response.WriteError),
		EmployerMW:  middleware.RequireRole(response.WriteError, domain.RoleEmployer),
	})
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}

	return &testServer{handler: mux, pub: pub}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func (ts *testServer) register(t *testing.T, role, name, email, password string) map[string]any {
	t.Helper()
	rec, body := ts.do(t, http.MethodPost, "/auth/v1/register/"+role, "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %v", role, rec.Code, body)
	}
	return body
}

func (ts *testServer) login(t *testing.T, name, email, password string) map[string]any {
	t.Helper()
	rec, body := ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %v", rec.Code, body)
	}
	return body
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	body := ts.register(t, "employer", "Hiring Corp", "Hire@Corp.com", "pw-123456")

	if body["message"] != "Registration successful." || body["success"] != true {
		t.Fatalf("unexpected envelope: %v", body)
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("no user payload: %v", body)
	}
	if user["role"] != "employer" || user["verified"] != false {
		t.Fatalf("unexpected user: %v", user)
	}
	if user["email"] != "hire@corp.com" {
		t.Fatalf("email = %v, want normalized lowercase", user["email"])
	}
	for k := range user {
		if strings.Contains(strings.ToLower(k), "password") {
			t.Fatalf("user payload leaks %q", k)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "First User", "first@example.com", "pw-123456")

	rec, body := ts.do(t, http.MethodPost, "/auth/v1/register/employer", "", map[string]string{
		"name": "Other Name", "email": "First@Example.com", "password": "pw-123456",
	})
	if rec.Code != http.StatusBadRequest || body["message"] != "email already taken." {
		t.Fatalf("duplicate email: status = %d, body %v", rec.Code, body)
	}

	rec, body = ts.do(t, http.MethodPost, "/auth/v1/register/employer", "", map[string]string{
		"name": "First User", "email": "other@example.com", "password": "pw-123456",
	})
	if rec.Code != http.StatusBadRequest || body["message"] != "Username already taken." {
		t.Fatalf("duplicate name: status = %d, body %v", rec.Code, body)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodPost, "/auth/v1/register/employee", "", map[string]string{
		"name": "No Password", "email": "np@example.com",
	})
	if rec.Code != http.StatusBadRequest || body["success"] != false {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}
}

func TestLoginByNameAndByEmail(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Login User", "login@example.com", "pw-123456")

	for _, creds := range []map[string]string{
		{"name": "Login User", "password": "pw-123456"},
		{"email": "login@example.com", "password": "pw-123456"},
	} {
		rec, body := ts.do(t, http.MethodPost, "/auth/v1/login", "", creds)
		if rec.Code != http.StatusOK {
			t.Fatalf("login with %v: status = %d, body %v", creds, rec.Code, body)
		}
		if body["message"] != "login successful" || body["success"] != true {
			t.Fatalf("unexpected envelope: %v", body)
		}

		token, _ := body["token"].(string)
		if !strings.HasPrefix(token, "Bearer ") {
			t.Fatalf("token = %q, want Bearer prefix", token)
		}

		expiry, err := time.Parse(time.RFC3339, body["expiryDate"].(string))
		if err != nil {
			t.Fatalf("parse expiryDate: %v", err)
		}
		want := time.Now().Add(15 * 24 * time.Hour)
		if expiry.Before(want.Add(-time.Minute)) || expiry.After(want.Add(time.Minute)) {
			t.Fatalf("expiryDate = %v, want about %v", expiry, want)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Login User", "login@example.com", "pw-123456")

	// unknown identifier is a distinct outcome from a wrong password
	rec, body := ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"email": "ghost@example.com", "password": "pw-123456",
	})
	if rec.Code != http.StatusNotFound || body["message"] != "There is not an account with this email or username" {
		t.Fatalf("unknown account: status = %d, body %v", rec.Code, body)
	}

	rec, body = ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"email": "login@example.com", "password": "wrong-password",
	})
	if rec.Code != http.StatusForbidden || body["message"] != "Invalid credentials!" {
		t.Fatalf("wrong password: status = %d, body %v", rec.Code, body)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"password": "pw-123456",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no identifier: status = %d", rec.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Me User", "me@example.com", "pw-123456")
	token := ts.login(t, "", "me@example.com", "pw-123456")["token"].(string)

	rec, body := ts.do(t, http.MethodGet, "/auth/v1/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status = %d, body %v", rec.Code, body)
	}
	user := body["user"].(map[string]any)
	if user["email"] != "me@example.com" {
		t.Fatalf("unexpected user: %v", user)
	}

	rec, body = ts.do(t, http.MethodGet, "/auth/v1/me", "", nil)
	if rec.Code != http.StatusUnauthorized || body["message"] != "Unauthorized." {
		t.Fatalf("no token: status = %d, body %v", rec.Code, body)
	}

	rec, _ = ts.do(t, http.MethodGet, "/auth/v1/me", "Bearer garbage.token.here", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Patch User", "patch@example.com", "pw-123456")
	ts.register(t, "employee", "Taken Name", "taken@example.com", "pw-123456")
	token := ts.login(t, "", "patch@example.com", "pw-123456")["token"].(string)

	// renaming to a value a DIFFERENT account holds is rejected
	rec, body := ts.do(t, http.MethodPatch, "/auth/v1/me", token, map[string]string{
		"name": "Taken Name",
	})
	if rec.Code != http.StatusBadRequest || body["message"] != "Username already taken." {
		t.Fatalf("taken name: status = %d, body %v", rec.Code, body)
	}

	// keeping one's own email while changing the name is fine
	rec, body = ts.do(t, http.MethodPatch, "/auth/v1/me", token, map[string]string{
		"name": "Renamed User", "email": "patch@example.com",
	})
	if rec.Code != http.StatusOK || body["message"] != "Records updated successfully." {
		t.Fatalf("rename: status = %d, body %v", rec.Code, body)
	}
	if body["user"].(map[string]any)["name"] != "Renamed User" {
		t.Fatalf("unexpected user: %v", body["user"])
	}

	// login under the new name works
	ts.login(t, "Renamed User", "", "pw-123456")
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Pw User", "pw@example.com", "old-pw-123")
	token := ts.login(t, "", "pw@example.com", "old-pw-123")["token"].(string)

	// the old password is checked before anything about the new one
	rec, body := ts.do(t, http.MethodPost, "/auth/v1/password/change", token, map[string]string{
		"old_password": "wrong-old", "new_password": "",
	})
	if rec.Code != http.StatusForbidden || body["message"] != "Incorrect Password." {
		t.Fatalf("wrong old password: status = %d, body %v", rec.Code, body)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/v1/password/change", token, map[string]string{
		"old_password": "old-pw-123", "new_password": "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty new password: status = %d", rec.Code)
	}

	rec, body = ts.do(t, http.MethodPost, "/auth/v1/password/change", token, map[string]string{
		"old_password": "old-pw-123", "new_password": "new-pw-456",
	})
	if rec.Code != http.StatusOK || body["message"] != "Password updated successfully." {
		t.Fatalf("change: status = %d, body %v", rec.Code, body)
	}

	// old password no longer works, new one does
	rec, _ = ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"email": "pw@example.com", "password": "old-pw-123",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("old password still accepted: status = %d", rec.Code)
	}
	ts.login(t, "", "pw@example.com", "new-pw-456")
}

func TestEmployerGate(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employer", "Boss User", "boss@example.com", "pw-123456")
	ts.register(t, "employee", "Staff User", "staff@example.com", "pw-123456")
	bossToken := ts.login(t, "", "boss@example.com", "pw-123456")["token"].(string)
	staffToken := ts.login(t, "", "staff@example.com", "pw-123456")["token"].(string)

	rec, _ := ts.do(t, http.MethodGet, "/auth/v1/employer", bossToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("employer: status = %d", rec.Code)
	}

	rec, body := ts.do(t, http.MethodGet, "/auth/v1/employer", staffToken, nil)
	if rec.Code != http.StatusUnauthorized || body["message"] != "Unauthorized." {
		t.Fatalf("employee: status = %d, body %v", rec.Code, body)
	}

	rec, _ = ts.do(t, http.MethodGet, "/auth/v1/employer", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d", rec.Code)
	}
}

func TestVerifyEmailConfirm(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "employee", "Verify User", "verify@example.com", "pw-123456")

	evt := ts.pub.last(t)
	sep := strings.LastIndex(evt.VerifyURL, "token=")
	if sep < 0 {
		t.Fatalf("verify URL %q has no token", evt.VerifyURL)
	}
	verifyToken := evt.VerifyURL[sep+len("token="):]

	rec, body := ts.do(t, http.MethodPost, "/auth/v1/verify-email/confirm", "", map[string]string{
		"token": verifyToken,
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("confirm: status = %d, body %v", rec.Code, body)
	}

	// the flag is visible on /me
	token := ts.login(t, "", "verify@example.com", "pw-123456")["token"].(string)
	_, me := ts.do(t, http.MethodGet, "/auth/v1/me", token, nil)
	if me["user"].(map[string]any)["verified"] != true {
		t.Fatalf("account not verified: %v", me)
	}

	// the token is single use
	rec, _ = ts.do(t, http.MethodPost, "/auth/v1/verify-email/confirm", "", map[string]string{
		"token": verifyToken,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second confirm: status = %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, body := ts.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, _ := ts.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"username": "typo", "password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
