package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	product "github.com/paoquentinho/storefront/internal/products"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Service is the cart store. Every mutation is persisted before it becomes
// visible; when the write fails the cart keeps its previous state.
type Service interface {
	AddToCart(ctx context.Context, p product.Product, quantity int, opts *product.CustomCakeOptions) (*LineItem, error)
	// UpdateQuantity and RemoveFromCart match by product id and therefore
	// touch every line of that product, customized or not.
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error
	RemoveLine(ctx context.Context, lineID string) error
	ClearCart(ctx context.Context) error

	Items() []LineItem
	TotalItems() int
	TotalPrice() decimal.Decimal
	Snapshot() Snapshot
}

// ServiceParams configure the cart store.
type ServiceParams struct {
	Repo    Repository
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
	NewID   func() string
}

type service struct {
	mu      sync.Mutex
	items   []LineItem
	repo    Repository
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	newID   func() string
}

// NewService builds the cart store and hydrates it from the repository.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	newID := params.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	items, err := params.Repo.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	return &service{
		items:   items,
		repo:    params.Repo,
		logg:    params.Logger,
		metrics: params.Metrics,
		newID:   newID,
	}, nil
}

// AddToCart merges plain lines of the same product and always appends a
// new line when options are present.
func (s *service) AddToCart(ctx context.Context, p product.Product, quantity int, opts *product.CustomCakeOptions) (*LineItem, error) {
	if p.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := CloneItems(s.items)
	idx := -1
	if opts == nil {
		idx = findMergeTarget(next, p.ID, opts)
	}

	if idx >= 0 {
		next[idx].Quantity += quantity
		next[idx].recompute()
	} else {
		line := LineItem{
			LineID:        s.newID(),
			Product:       p,
			Quantity:      quantity,
			CustomOptions: opts.Clone(),
		}
		line.recompute()
		next = append(next, line)
		idx = len(next) - 1
	}

	if err := s.commit(ctx, "add", next); err != nil {
		return nil, err
	}
	added := next[idx].Clone()
	return &added, nil
}

func (s *service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.rewrite(func(l LineItem) bool { return l.Product.ID == productID }, quantity)
	return s.commit(ctx, "update_quantity", next)
}

func (s *service) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.rewrite(func(l LineItem) bool { return l.Product.ID == productID }, 0)
	return s.commit(ctx, "remove", next)
}

func (s *service) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error {
	ctx = s.logg.WithLineID(ctx, lineID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasLine(lineID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	next := s.rewrite(func(l LineItem) bool { return l.LineID == lineID }, quantity)
	return s.commit(ctx, "update_line", next)
}

func (s *service) RemoveLine(ctx context.Context, lineID string) error {
	ctx = s.logg.WithLineID(ctx, lineID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasLine(lineID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	next := s.rewrite(func(l LineItem) bool { return l.LineID == lineID }, 0)
	return s.commit(ctx, "remove_line", next)
}

func (s *service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "clear", []LineItem{})
}

func (s *service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := CloneItems(s.items)
	if out == nil {
		out = []LineItem{}
	}
	return out
}

func (s *service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, _ := totals(s.items)
	return count
}

func (s *service) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, sum := totals(s.items)
	return sum
}

func (s *service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	count, sum := totals(s.items)
	items := CloneItems(s.items)
	if items == nil {
		items = []LineItem{}
	}
	return Snapshot{Items: items, TotalItems: count, TotalPrice: sum}
}

// rewrite returns a copy of the cart where matching lines get quantity, or
// are dropped when quantity is not positive. Caller holds s.mu.
func (s *service) rewrite(match func(LineItem) bool, quantity int) []LineItem {
	next := make([]LineItem, 0, len(s.items))
	for _, l := range s.items {
		l = l.Clone()
		if match(l) {
			if quantity <= 0 {
				continue
			}
			l.Quantity = quantity
			l.recompute()
		}
		next = append(next, l)
	}
	return next
}

func (s *service) hasLine(lineID string) bool {
	for _, l := range s.items {
		if l.LineID == lineID {
			return true
		}
	}
	return false
}

// commit persists next and swaps it in. Caller holds s.mu.
func (s *service) commit(ctx context.Context, op string, next []LineItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "operation", op), "cart.persist_failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	s.items = next
	s.metrics.IncCartMutation(op)

	count, sum := totals(next)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"operation":   op,
		"lines":       len(next),
		"total_items": count,
		"total_price": sum.StringFixed(2),
	})
	s.logg.Debug(ctx, "cart.updated")
	return nil
}

// findMergeTarget returns the first line of productID whose options equal
// opts. Customized additions never reach it.
func findMergeTarget(items []LineItem, productID string, opts *product.CustomCakeOptions) int {
	for i, l := range items {
		if l.Product.ID == productID && l.CustomOptions.Equal(opts) {
			return i
		}
	}
	return -1
}
