package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/paoquentinho/storefront/internal/cart"
	"github.com/paoquentinho/storefront/internal/orders"
	"github.com/paoquentinho/storefront/internal/users"
	"github.com/paoquentinho/storefront/pkg/enums"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/schedule"
)

type cartStore interface {
	Items() []cart.LineItem
	ClearCart(ctx context.Context) error
}

type orderCreator interface {
	CreateOrder(ctx context.Context, items []cart.LineItem, method enums.PaymentMethod, userID string) (*orders.Order, error)
}

type sessionReader interface {
	CurrentUser() *users.User
}

// Service turns the current cart into an order for the logged-in user.
type Service interface {
	Checkout(ctx context.Context, method enums.PaymentMethod) (*Result, error)
}

// Result is the confirmation shown after payment.
type Result struct {
	Order         orders.Order `json:"order"`
	HasCustomCake bool         `json:"hasCustomCake"`
	EstimatedTime *int         `json:"estimatedTime,omitempty"`
}

type ServiceParams struct {
	Cart         cartStore
	Orders       orderCreator
	Session      sessionReader
	PaymentDelay time.Duration
	Logger       *logger.Logger
}

type service struct {
	cart         cartStore
	orders       orderCreator
	session      sessionReader
	paymentDelay time.Duration
	logg         *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order store required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session reader required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cart:         params.Cart,
		orders:       params.Orders,
		session:      params.Session,
		paymentDelay: params.PaymentDelay,
		logg:         params.Logger,
	}, nil
}

// Checkout waits the simulated payment, creates the order and clears the
// cart. The two writes are independent: a failed clear is logged and the
// created order is still returned.
func (s *service) Checkout(ctx context.Context, method enums.PaymentMethod) (*Result, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if len(s.cart.Items()) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, user.ID), map[string]any{
		"payment_method":    method.String(),
		"settled_at_pickup": method.SettledAtPickup(),
	})

	if err := schedule.Sleep(ctx, s.paymentDelay); err != nil {
		return nil, err
	}

	// read again after the wait so a logout or cart edit made meanwhile wins
	if current := s.session.CurrentUser(); current == nil || current.ID != user.ID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session ended during payment")
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order, err := s.orders.CreateOrder(ctx, items, method, user.ID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithOrderID(ctx, order.ID)

	if err := s.cart.ClearCart(ctx); err != nil {
		s.logg.Error(ctx, "checkout.cart_clear_failed", err)
	}

	s.logg.Info(ctx, "checkout.completed")
	return &Result{
		Order:         *order,
		HasCustomCake: order.HasCustomCake(),
		EstimatedTime: order.EstimatedTime,
	}, nil
}
