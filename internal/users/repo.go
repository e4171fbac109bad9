package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/storage"
)

// Repository exposes account persistence: the registered user list and the
// currently logged-in user.
type Repository interface {
	// List returns the registered users, or the demo accounts when none
	// were ever saved.
	List(ctx context.Context) ([]User, error)
	SaveList(ctx context.Context, users []User) error
	// Current returns nil when nobody is logged in.
	Current(ctx context.Context) (*User, error)
	SaveCurrent(ctx context.Context, user User) error
	ClearCurrent(ctx context.Context) error
}

type repository struct {
	store storage.Store
	logg  *logger.Logger
}

// NewRepository constructs a users repo over the given store.
func NewRepository(store storage.Store, logg *logger.Logger) Repository {
	return &repository{store: store, logg: logg}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var list []User
	found, err := storage.LoadJSON(ctx, r.store, storage.KeyUsers, &list)
	if r.quarantined(ctx, err) {
		return DemoUsers(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !found {
		return DemoUsers(), nil
	}
	if list == nil {
		list = []User{}
	}
	return list, nil
}

func (r *repository) SaveList(ctx context.Context, list []User) error {
	if list == nil {
		list = []User{}
	}
	return storage.SaveJSON(ctx, r.store, storage.KeyUsers, list)
}

func (r *repository) Current(ctx context.Context) (*User, error) {
	var user User
	found, err := storage.LoadJSON(ctx, r.store, storage.KeyCurrentUser, &user)
	if r.quarantined(ctx, err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}
	if !found || user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (r *repository) SaveCurrent(ctx context.Context, user User) error {
	return storage.SaveJSON(ctx, r.store, storage.KeyCurrentUser, user)
}

func (r *repository) ClearCurrent(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyCurrentUser)
}

// quarantined sets corrupt records aside and reports whether err was one.
func (r *repository) quarantined(ctx context.Context, err error) bool {
	var corrupt *storage.CorruptError
	if !errors.As(err, &corrupt) {
		return false
	}
	qerr := storage.Quarantine(ctx, r.store, corrupt)
	if r.logg != nil {
		ctx = r.logg.WithFields(ctx, map[string]any{"key": corrupt.Key, "reason": corrupt.Err.Error()})
		r.logg.Warn(ctx, "users.load.corrupt")
		if qerr != nil {
			r.logg.Error(ctx, "users.load.quarantine_failed", qerr)
		}
	}
	return true
}
