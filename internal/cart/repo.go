package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/storage"
)

// Repository persists the whole line collection under one key.
type Repository interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

type repository struct {
	store storage.Store
	logg  *logger.Logger
}

func NewRepository(store storage.Store, logg *logger.Logger) Repository {
	return &repository{store: store, logg: logg}
}

// Load reads the persisted cart. Unreadable data is set aside under the
// .corrupt key and an empty cart is returned. Loaded lines are repaired:
// non-positive quantities are dropped, totals are recomputed and missing
// line ids are assigned.
func (r *repository) Load(ctx context.Context) ([]LineItem, error) {
	var items []LineItem
	_, err := storage.LoadJSON(ctx, r.store, storage.KeyCart, &items)
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		r.quarantine(ctx, corrupt)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || it.Product.ID == "" {
			continue
		}
		if it.LineID == "" {
			it.LineID = uuid.NewString()
		}
		it.recompute()
		out = append(out, it)
	}
	return out, nil
}

func (r *repository) Save(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	return storage.SaveJSON(ctx, r.store, storage.KeyCart, items)
}

func (r *repository) quarantine(ctx context.Context, corrupt *storage.CorruptError) {
	ctx = r.logg.WithFields(ctx, map[string]any{"key": corrupt.Key, "reason": corrupt.Err.Error()})
	r.logg.Warn(ctx, "cart.load.corrupt")
	if err := storage.Quarantine(ctx, r.store, corrupt); err != nil {
		r.logg.Error(ctx, "cart.load.quarantine_failed", err)
	}
}
