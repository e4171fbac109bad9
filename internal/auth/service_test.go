package auth

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/paoquentinho/storefront/internal/users"
	"github.com/paoquentinho/storefront/pkg/config"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/security"
	"github.com/paoquentinho/storefront/pkg/storage"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	store *storage.Memory
	repo  users.Repository
	svc   Service
}

func buildTestService(t *testing.T, store *storage.Memory, pwd config.PasswordConfig) *testEnv {
	t.Helper()
	if store == nil {
		store = storage.NewMemory()
	}
	logg := logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard})
	repo := users.NewRepository(store, logg)
	svc, err := NewService(context.Background(), ServiceParams{
		Repo:   repo,
		Hasher: security.NewPasswordHasher(pwd),
		Logger: logg,
		Clock:  func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &testEnv{store: store, repo: repo, svc: svc}
}

func strPtr(v string) *string { return &v }

func TestLoginWithDemoAccount(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	ctx := context.Background()

	ok, err := env.svc.Login(ctx, "maria@email.com", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !ok {
		t.Fatalf("expected demo login to succeed")
	}
	current := env.svc.CurrentUser()
	if current == nil || current.ID != "1" || current.Nome != "Maria Silva" {
		t.Fatalf("unexpected current user %+v", current)
	}

	persisted, err := env.repo.Current(ctx)
	if err != nil {
		t.Fatalf("load persisted user: %v", err)
	}
	if persisted == nil || persisted.ID != "1" {
		t.Fatalf("expected current user to be persisted, got %+v", persisted)
	}
}

func TestLoginRejectsUnknownEmailAndWrongPassword(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	ctx := context.Background()

	for _, tc := range []struct{ email, senha string }{
		{"maria@email.com", "wrong"},
		{"nobody@email.com", "123456"},
		{"MARIA@email.com", "123456"},
	} {
		ok, err := env.svc.Login(ctx, tc.email, tc.senha)
		if err != nil {
			t.Fatalf("login %s: %v", tc.email, err)
		}
		if ok {
			t.Fatalf("expected login %s/%s to fail", tc.email, tc.senha)
		}
	}
	if env.svc.CurrentUser() != nil {
		t.Fatalf("failed logins must not set a current user")
	}
}

func TestRegisterThenLogin(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	ctx := context.Background()

	reg := users.Registration{Nome: "Ana Lima", Telefone: "(11) 91234-5678", Email: "ana@email.com", Senha: "segredo"}
	ok, err := env.svc.Register(ctx, reg)
	if err != nil || !ok {
		t.Fatalf("register: ok=%v err=%v", ok, err)
	}

	current := env.svc.CurrentUser()
	wantID := "1773135000000"
	if current == nil || current.ID != wantID {
		t.Fatalf("expected id %s, got %+v", wantID, current)
	}

	list, err := env.repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[2].Email != "ana@email.com" {
		t.Fatalf("expected demo users plus the new account, got %+v", list)
	}

	if err := env.svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ok, err = env.svc.Login(ctx, "ana@email.com", "segredo")
	if err != nil || !ok {
		t.Fatalf("login after register: ok=%v err=%v", ok, err)
	}
	ok, err = env.svc.Login(ctx, "maria@email.com", "123456")
	if err != nil || !ok {
		t.Fatalf("demo accounts survive registration: ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})

	ok, err := env.svc.Register(context.Background(), users.Registration{Nome: "X", Telefone: "1", Email: "joao@email.com", Senha: "abcdef"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if ok {
		t.Fatalf("expected duplicate email to be rejected")
	}
	if env.svc.CurrentUser() != nil {
		t.Fatalf("rejected registration must not log in")
	}
}

func TestRegisterBumpsCollidingIDs(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	ctx := context.Background()

	for i, email := range []string{"a@email.com", "b@email.com"} {
		ok, err := env.svc.Register(ctx, users.Registration{Nome: "N", Telefone: "T", Email: email, Senha: "abcdef"})
		if err != nil || !ok {
			t.Fatalf("register %d: ok=%v err=%v", i, ok, err)
		}
	}
	list, _ := env.repo.List(ctx)
	if list[2].ID == list[3].ID {
		t.Fatalf("expected unique ids, both are %s", list[2].ID)
	}
	if list[3].ID != "1773135000001" {
		t.Fatalf("expected bumped id, got %s", list[3].ID)
	}
}

func TestArgonModeHashesNewPasswords(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{Mode: config.PasswordModeArgon2id})
	ctx := context.Background()

	ok, err := env.svc.Register(ctx, users.Registration{Nome: "Hash", Telefone: "T", Email: "hash@email.com", Senha: "segredo"})
	if err != nil || !ok {
		t.Fatalf("register: ok=%v err=%v", ok, err)
	}
	stored := env.svc.CurrentUser().Senha
	if !security.IsArgonHash(stored) {
		t.Fatalf("expected argon2id hash, got %q", stored)
	}
	if strings.Contains(stored, "segredo") {
		t.Fatalf("stored password leaks the plain value")
	}

	ok, err = env.svc.Login(ctx, "hash@email.com", "segredo")
	if err != nil || !ok {
		t.Fatalf("hashed login: ok=%v err=%v", ok, err)
	}
	ok, err = env.svc.Login(ctx, "maria@email.com", "123456")
	if err != nil || !ok {
		t.Fatalf("plain seed accounts still verify: ok=%v err=%v", ok, err)
	}
}

func TestLoginWithGoogle(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	user, err := env.svc.LoginWithGoogle(context.Background())
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if user.ID != "google_1773135000000" || user.Email != "usuario@gmail.com" || user.Nome != "Usuário do Google" {
		t.Fatalf("unexpected google user %+v", user)
	}
	if env.svc.CurrentUser().ID != user.ID {
		t.Fatalf("google user must become the current user")
	}
}

func TestCurrentUserIsRestored(t *testing.T) {
	store := storage.NewMemory()
	first := buildTestService(t, store, config.PasswordConfig{})
	if ok, err := first.svc.Login(context.Background(), "joao@email.com", "123456"); err != nil || !ok {
		t.Fatalf("login: ok=%v err=%v", ok, err)
	}

	second := buildTestService(t, store, config.PasswordConfig{})
	current := second.svc.CurrentUser()
	if current == nil || current.ID != "2" {
		t.Fatalf("expected restored user 2, got %+v", current)
	}

	if err := second.svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := store.Get(context.Background(), storage.KeyCurrentUser); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected persisted user to be deleted, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := buildTestService(t, nil, config.PasswordConfig{})
	ctx := context.Background()

	if _, err := env.svc.UpdateProfile(ctx, users.ProfileUpdate{Nome: strPtr("x")}); pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized without a current user, got %v", err)
	}

	if ok, err := env.svc.Login(ctx, "maria@email.com", "123456"); err != nil || !ok {
		t.Fatalf("login: ok=%v err=%v", ok, err)
	}

	if _, err := env.svc.UpdateProfile(ctx, users.ProfileUpdate{Email: strPtr("joao@email.com")}); pkgerrors.CodeOf(err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for a taken email, got %v", err)
	}

	updated, err := env.svc.UpdateProfile(ctx, users.ProfileUpdate{Nome: strPtr("Maria S. Costa"), Telefone: strPtr("(11) 90000-0000")})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Nome != "Maria S. Costa" || updated.Email != "maria@email.com" || updated.Senha != "123456" {
		t.Fatalf("unexpected merge result %+v", updated)
	}

	list, _ := env.repo.List(ctx)
	if list[0].Nome != "Maria S. Costa" || list[1].Nome != "João Santos" {
		t.Fatalf("expected only the matching list entry to change, got %+v", list)
	}
	persisted, _ := env.repo.Current(ctx)
	if persisted.Telefone != "(11) 90000-0000" {
		t.Fatalf("expected current user record to be rewritten, got %+v", persisted)
	}
}

func TestDelaysAreContextAware(t *testing.T) {
	logg := logger.New(logger.Options{Output: io.Discard})
	svc, err := NewService(context.Background(), ServiceParams{
		Repo:   users.NewRepository(storage.NewMemory(), logg),
		Hasher: security.NewPasswordHasher(config.PasswordConfig{}),
		Delays: config.SimulationConfig{LoginDelay: time.Hour, GoogleDelay: time.Hour},
		Logger: logg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Login(ctx, "maria@email.com", "123456"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled login, got %v", err)
	}
	if _, err := svc.LoginWithGoogle(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled google login, got %v", err)
	}
	if svc.CurrentUser() != nil {
		t.Fatalf("canceled logins must not set a user")
	}
}
