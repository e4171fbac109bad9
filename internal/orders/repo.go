package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/storage"
)

// Repository persists the full order list, newest first.
type Repository interface {
	Load(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
}

type repository struct {
	store storage.Store
	logg  *logger.Logger
}

func NewRepository(store storage.Store, logg *logger.Logger) Repository {
	return &repository{store: store, logg: logg}
}

// Load returns the persisted orders. A corrupt record is moved to the
// .corrupt key and an empty list is returned; entries without an id or
// with an unknown status are skipped.
func (r *repository) Load(ctx context.Context) ([]Order, error) {
	var list []Order
	_, err := storage.LoadJSON(ctx, r.store, storage.KeyOrders, &list)
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		qerr := storage.Quarantine(ctx, r.store, corrupt)
		if r.logg != nil {
			ctx = r.logg.WithFields(ctx, map[string]any{"key": corrupt.Key, "reason": corrupt.Err.Error()})
			r.logg.Warn(ctx, "orders.load.corrupt")
			if qerr != nil {
				r.logg.Error(ctx, "orders.load.quarantine_failed", qerr)
			}
		}
		return []Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	out := make([]Order, 0, len(list))
	for _, o := range list {
		if o.ID == "" || !o.Status.IsValid() {
			if r.logg != nil {
				r.logg.Warn(r.logg.WithOrderID(ctx, o.ID), "orders.load.skipped_invalid")
			}
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *repository) Save(ctx context.Context, list []Order) error {
	if list == nil {
		list = []Order{}
	}
	return storage.SaveJSON(ctx, r.store, storage.KeyOrders, list)
}
