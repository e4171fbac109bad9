package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paoquentinho/storefront/internal/users"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
)

type stubAuthService struct {
	loginOK    bool
	registerOK bool
	err        error
	current    *users.User
	lastUpdate users.ProfileUpdate
	loggedOut  bool
}

func (s *stubAuthService) Login(ctx context.Context, email, senha string) (bool, error) {
	return s.loginOK, s.err
}

func (s *stubAuthService) Register(ctx context.Context, reg users.Registration) (bool, error) {
	return s.registerOK, s.err
}

func (s *stubAuthService) LoginWithGoogle(ctx context.Context) (*users.User, error) {
	return s.current, s.err
}

func (s *stubAuthService) Logout(ctx context.Context) error {
	s.loggedOut = true
	return s.err
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error) {
	s.lastUpdate = update
	return s.current, s.err
}

func (s *stubAuthService) CurrentUser() *users.User { return s.current }

var maria = &users.User{ID: "1", Nome: "Maria Silva", Telefone: "(11) 98765-4321", Email: "maria@email.com", Senha: "123456"}

func post(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestAuthLoginSuccessOmitsPassword(t *testing.T) {
	svc := &stubAuthService{loginOK: true, current: maria}
	resp := post(AuthLogin(svc, nil), "/api/v1/auth/login", `{"email":"maria@email.com","senha":"123456"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "senha") {
		t.Fatalf("password leaked: %s", resp.Body.String())
	}
	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != "1" {
		t.Fatalf("unexpected user %q", envelope.Data.ID)
	}
}

func TestAuthLoginRejected(t *testing.T) {
	resp := post(AuthLogin(&stubAuthService{}, nil), "/api/v1/auth/login", `{"email":"maria@email.com","senha":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid credentials") {
		t.Fatalf("expected generic message got %s", resp.Body.String())
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	resp := post(AuthLogin(&stubAuthService{}, nil), "/api/v1/auth/login", `{"email":""}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthRegister(t *testing.T) {
	body := `{"nome":"Ana","telefone":"(11) 90000-0000","email":"ana@email.com","senha":"segredo"}`

	resp := post(AuthRegister(&stubAuthService{registerOK: true, current: maria}, nil), "/api/v1/auth/register", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	resp = post(AuthRegister(&stubAuthService{}, nil), "/api/v1/auth/register", body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAuthRegisterValidatesBody(t *testing.T) {
	resp := post(AuthRegister(&stubAuthService{registerOK: true}, nil), "/api/v1/auth/register",
		`{"nome":"Ana","telefone":"1","email":"not-an-email","senha":"123"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["email"] == "" || envelope.Error.Details["senha"] == "" {
		t.Fatalf("expected email and senha violations got %v", envelope.Error.Details)
	}
}

func TestAuthGoogleAndLogout(t *testing.T) {
	svc := &stubAuthService{current: &users.User{ID: "google_1", Email: "usuario@gmail.com"}}

	if resp := post(AuthGoogle(svc, nil), "/api/v1/auth/google", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp := post(AuthLogout(svc, nil), "/api/v1/auth/logout", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.loggedOut {
		t.Fatalf("expected logout to reach the service")
	}
}

func TestAuthInfrastructureFailure(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("redis down"), "persist users")}
	resp := post(AuthLogin(svc, nil), "/api/v1/auth/login", `{"email":"maria@email.com","senha":"123456"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "redis down") {
		t.Fatalf("internal error leaked: %s", resp.Body.String())
	}
}

func TestProfileGet(t *testing.T) {
	resp := httptest.NewRecorder()
	ProfileGet(&stubAuthService{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	ProfileGet(&stubAuthService{current: maria}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	svc := &stubAuthService{current: maria}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", strings.NewReader(`{"nome":"Maria S."}`))
	resp := httptest.NewRecorder()
	ProfileUpdate(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastUpdate.Nome == nil || *svc.lastUpdate.Nome != "Maria S." {
		t.Fatalf("unexpected update %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Email != nil {
		t.Fatalf("omitted email should stay nil")
	}
}

func TestProfileUpdateRejectsEmptyPatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	ProfileUpdate(&stubAuthService{current: maria}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
