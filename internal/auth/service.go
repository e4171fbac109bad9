package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/paoquentinho/storefront/internal/users"
	"github.com/paoquentinho/storefront/pkg/config"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/schedule"
	"github.com/paoquentinho/storefront/pkg/security"
)

const (
	googleUserName     = "Usuário do Google"
	googleUserPhone    = "(11) 99999-0000"
	googleUserEmail    = "usuario@gmail.com"
	googleUserPassword = "google_auth"
)

// Service is the account store: one current user per storefront process.
type Service interface {
	// Login reports false for unknown emails and wrong passwords alike.
	Login(ctx context.Context, email, senha string) (bool, error)
	// Register reports false when the email is already taken.
	Register(ctx context.Context, reg users.Registration) (bool, error)
	LoginWithGoogle(ctx context.Context) (*users.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error)
	CurrentUser() *users.User
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repo   users.Repository
	Hasher security.PasswordHasher
	Delays config.SimulationConfig
	Logger *logger.Logger
	Clock  func() time.Time
}

type service struct {
	mu      sync.Mutex
	current *users.User

	repo   users.Repository
	hasher security.PasswordHasher
	delays config.SimulationConfig
	logg   *logger.Logger
	clock  func() time.Time
}

// NewService constructs the account store and restores the persisted
// current user.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	current, err := params.Repo.Current(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current user")
	}

	return &service{
		current: current,
		repo:    params.Repo,
		hasher:  params.Hasher,
		delays:  params.Delays,
		logg:    params.Logger,
		clock:   clock,
	}, nil
}

func (s *service) Login(ctx context.Context, email, senha string) (bool, error) {
	if err := schedule.Sleep(ctx, s.delays.LoginDelay); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}

	var found *users.User
	for i := range list {
		if list[i].Email == email && s.hasher.Verify(senha, list[i].Senha) {
			found = &list[i]
			break
		}
	}
	if found == nil {
		s.logg.Info(s.logg.WithField(ctx, "email", email), "auth.login.rejected")
		return false, nil
	}

	if err := s.setCurrent(ctx, *found); err != nil {
		return false, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, found.ID), "auth.login.succeeded")
	return true, nil
}

func (s *service) Register(ctx context.Context, reg users.Registration) (bool, error) {
	if err := schedule.Sleep(ctx, s.delays.RegisterDelay); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	for _, u := range list {
		if users.SameEmail(u.Email, reg.Email) {
			s.logg.Info(s.logg.WithField(ctx, "email", reg.Email), "auth.register.email_taken")
			return false, nil
		}
	}

	stored, err := s.hasher.Hash(reg.Senha)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := users.User{
		ID:       nextUserID(list, s.clock()),
		Nome:     reg.Nome,
		Telefone: reg.Telefone,
		Email:    strings.TrimSpace(reg.Email),
		Senha:    stored,
	}
	next := append(append([]users.User(nil), list...), user)
	if err := s.repo.SaveList(ctx, next); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return false, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "auth.register.succeeded")
	return true, nil
}

// LoginWithGoogle signs in a fabricated account. The account is not added
// to the registered user list.
func (s *service) LoginWithGoogle(ctx context.Context) (*users.User, error) {
	if err := schedule.Sleep(ctx, s.delays.GoogleDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := users.User{
		ID:       "google_" + strconv.FormatInt(s.clock().UnixMilli(), 10),
		Nome:     googleUserName,
		Telefone: googleUserPhone,
		Email:    googleUserEmail,
		Senha:    googleUserPassword,
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "auth.google.succeeded")
	out := user
	return &out, nil
}

func (s *service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearCurrent(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear current user")
	}
	if s.current != nil {
		s.logg.Info(s.logg.WithUserID(ctx, s.current.ID), "auth.logout")
	}
	s.current = nil
	return nil
}

// UpdateProfile merges the provided fields into the current user and
// rewrites its entry in the registered list.
func (s *service) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	ctx = s.logg.WithUserID(ctx, s.current.ID)

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}

	updated := *s.current
	if update.Nome != nil {
		updated.Nome = *update.Nome
	}
	if update.Telefone != nil {
		updated.Telefone = *update.Telefone
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		for _, u := range list {
			if u.ID != updated.ID && users.SameEmail(u.Email, email) {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
		}
		updated.Email = email
	}
	if update.Senha != nil {
		stored, err := s.hasher.Hash(*update.Senha)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updated.Senha = stored
	}

	if err := s.repo.SaveCurrent(ctx, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save current user")
	}
	s.current = &updated

	next := make([]users.User, len(list))
	matched := false
	for i, u := range list {
		if u.ID == updated.ID {
			u = updated
			matched = true
		}
		next[i] = u
	}
	if matched {
		if err := s.repo.SaveList(ctx, next); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save users")
		}
	}

	s.logg.Info(ctx, "auth.profile.updated")
	out := updated
	return &out, nil
}

func (s *service) CurrentUser() *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// setCurrent persists user as the logged-in account. Caller holds s.mu.
func (s *service) setCurrent(ctx context.Context, user users.User) error {
	if err := s.repo.SaveCurrent(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save current user")
	}
	s.current = &user
	return nil
}

// nextUserID derives an id from the creation time, bumping it until no
// registered user holds it.
func nextUserID(list []users.User, now time.Time) string {
	taken := make(map[string]struct{}, len(list))
	for _, u := range list {
		taken[u.ID] = struct{}{}
	}
	millis := now.UnixMilli()
	for {
		id := strconv.FormatInt(millis, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		millis++
	}
}
