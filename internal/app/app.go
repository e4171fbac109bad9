// Package app assembles the storefront stores over one storage backend and
// owns their lifetime.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/paoquentinho/storefront/internal/auth"
	"github.com/paoquentinho/storefront/internal/cart"
	"github.com/paoquentinho/storefront/internal/checkout"
	"github.com/paoquentinho/storefront/internal/orders"
	product "github.com/paoquentinho/storefront/internal/products"
	"github.com/paoquentinho/storefront/internal/users"
	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/metrics"
	"github.com/paoquentinho/storefront/pkg/schedule"
	"github.com/paoquentinho/storefront/pkg/security"
	"github.com/paoquentinho/storefront/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

// App is the storefront container handed to the HTTP layer.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    storage.Store
	Registry *prometheus.Registry

	Products product.Service
	Cart     cart.Service
	Auth     auth.Service
	Orders   orders.Service
	Checkout checkout.Service

	closers []func() error
}

type options struct {
	store     storage.Store
	scheduler schedule.Scheduler
	registry  *prometheus.Registry
	clock     func() time.Time
}

type Option func(*options)

// WithStore skips backend selection and uses s.
func WithStore(s storage.Store) Option {
	return func(o *options) { o.store = s }
}

func WithScheduler(s schedule.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// New wires every store. On error anything already opened is closed.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Logger: logg}
	built := false
	defer func() {
		if !built {
			_ = a.Close()
		}
	}()

	a.Registry = o.registry
	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	storefrontMetrics := metrics.NewStorefrontMetrics(a.Registry)

	a.Store = o.store
	if a.Store == nil {
		store, closeStore, err := OpenStore(ctx, cfg, logg)
		if err != nil {
			return nil, err
		}
		a.Store = store
		a.closers = append(a.closers, closeStore)
	}

	scheduler := o.scheduler
	if scheduler == nil {
		scheduler = schedule.NewTimer(metrics.NewSchedulerMetrics(a.Registry))
	}

	a.Products = product.NewService()

	var err error
	a.Cart, err = cart.NewService(ctx, cart.ServiceParams{
		Repo:    cart.NewRepository(a.Store, logg),
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}

	a.Auth, err = auth.NewService(ctx, auth.ServiceParams{
		Repo:   users.NewRepository(a.Store, logg),
		Hasher: security.NewPasswordHasher(cfg.Password),
		Delays: cfg.Simulation,
		Logger: logg,
		Clock:  o.clock,
	})
	if err != nil {
		return nil, fmt.Errorf("account store: %w", err)
	}

	a.Orders, err = orders.NewService(ctx, orders.ServiceParams{
		Repo:      orders.NewRepository(a.Store, logg),
		Scheduler: scheduler,
		Config:    cfg.Orders,
		Logger:    logg,
		Metrics:   storefrontMetrics,
		Clock:     o.clock,
	})
	if err != nil {
		_ = scheduler.Close()
		return nil, fmt.Errorf("order store: %w", err)
	}
	// orders must stop before the backend it writes to
	a.closers = append([]func() error{a.Orders.Close}, a.closers...)

	a.Checkout, err = checkout.NewService(checkout.ServiceParams{
		Cart:         a.Cart,
		Orders:       a.Orders,
		Session:      a.Auth,
		PaymentDelay: cfg.Simulation.PaymentDelay,
		Logger:       logg,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	built = true
	return a, nil
}

// Ping checks the storage backend.
func (a *App) Ping(ctx context.Context) error {
	if a.Store == nil {
		return fmt.Errorf("storage not configured")
	}
	return a.Store.Ping(ctx)
}

// Close stops scheduled work, then releases the backend.
func (a *App) Close() error {
	var errs error
	for _, c := range a.closers {
		errs = multierr.Append(errs, c())
	}
	a.closers = nil
	return errs
}
