package orders

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/paoquentinho/storefront/internal/cart"
	product "github.com/paoquentinho/storefront/internal/products"
	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/enums"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/metrics"
	"github.com/paoquentinho/storefront/pkg/schedule"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	sourceManual    = "manual"
	sourceScheduled = "scheduled"

	pickupTimeLayout = "15:04"
)

// Service is the order store. Status only moves forward along
// Recebido, Em Preparo, Pronto para Retirada, Concluído.
type Service interface {
	CreateOrder(ctx context.Context, items []cart.LineItem, method enums.PaymentMethod, userID string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	// GetUserOrders returns the user's orders, newest first.
	GetUserOrders(ctx context.Context, userID string) []Order
	Orders() []Order
	// Close cancels pending transitions and waits for running ones.
	Close() error
}

type ServiceParams struct {
	Repo      Repository
	Scheduler schedule.Scheduler
	Config    config.OrdersConfig
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
	Clock     func() time.Time
}

type service struct {
	mu      sync.Mutex
	orders  []Order
	pending map[string][]schedule.Handle
	closed  bool

	repo      Repository
	scheduler schedule.Scheduler
	cfg       config.OrdersConfig
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
	clock     func() time.Time
}

// NewService hydrates the order store. With ResumePending set, remaining
// automatic transitions of loaded orders are scheduled again relative to
// their creation time.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Scheduler == nil {
		return nil, fmt.Errorf("scheduler required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	list, err := params.Repo.Load(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}

	s := &service{
		orders:    list,
		pending:   make(map[string][]schedule.Handle),
		repo:      params.Repo,
		scheduler: params.Scheduler,
		cfg:       params.Config,
		logg:      params.Logger,
		metrics:   params.Metrics,
		clock:     clock,
	}

	if params.Config.ResumePending {
		if err := s.resume(ctx); err != nil {
			s.logg.Error(ctx, "orders.resume.partial", err)
		}
	}
	return s, nil
}

func (s *service) CreateOrder(ctx context.Context, items []cart.LineItem, method enums.PaymentMethod, userID string) (*Order, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order store closed")
	}

	now := s.clock()
	snapshot := cart.CloneItems(items)
	total := decimal.Zero
	for _, it := range snapshot {
		total = total.Add(it.TotalPrice)
	}

	order := Order{
		ID:            s.nextID(now),
		UserID:        userID,
		Items:         snapshot,
		TotalPrice:    total,
		Status:        enums.OrderStatusReceived,
		PaymentMethod: method,
		CreatedAt:     now,
	}
	custom := hasCustomCake(snapshot)
	if custom {
		order.PickupTime = pickupTime(snapshot, now.Location())
	} else {
		minutes := s.cfg.EstimatedMinutes
		order.EstimatedTime = &minutes
	}

	next := make([]Order, 0, len(s.orders)+1)
	next = append(next, order)
	next = append(next, s.orders...)
	if err := s.repo.Save(ctx, next); err != nil {
		s.logg.Error(ctx, "orders.persist_failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
	}
	s.orders = next
	s.metrics.IncOrderCreated(method.String())

	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID), map[string]any{
		"user_id":         userID,
		"payment_method":  method.String(),
		"total_price":     total.StringFixed(2),
		"has_custom_cake": custom,
	})
	s.logg.Info(ctx, "orders.created")

	if !custom {
		_ = s.scheduleLocked(ctx, order.ID, enums.OrderStatusPreparing, s.cfg.PreparingDelay)
		_ = s.scheduleLocked(ctx, order.ID, enums.OrderStatusReady, s.cfg.ReadyDelay)
	}

	out := order.Clone()
	return &out, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	current := s.orders[idx].Status
	if current == status {
		out := s.orders[idx].Clone()
		return &out, nil
	}
	if !current.CanAdvanceTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status cannot move backwards").
			WithDetails(map[string]any{"current": current, "requested": status})
	}

	ctx = s.logg.WithOrderID(ctx, orderID)
	if err := s.setStatusLocked(ctx, idx, status, sourceManual); err != nil {
		return nil, err
	}
	if status.IsTerminal() {
		s.cancelPendingLocked(orderID)
	}
	out := s.orders[idx].Clone()
	return &out, nil
}

func (s *service) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	out := s.orders[idx].Clone()
	return &out, nil
}

func (s *service) GetUserOrders(ctx context.Context, userID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *service) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.pending = make(map[string][]schedule.Handle)
	s.mu.Unlock()

	// scheduled callbacks take s.mu, so the scheduler is closed without it
	return s.scheduler.Close()
}

// applyScheduled runs an automatic transition. Transitions that would not
// move the order forward are skipped.
func (s *service) applyScheduled(ctx context.Context, orderID string, status enums.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = s.logg.WithComponent(ctx, "order_scheduler")
	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, orderID), map[string]any{
		"status": status.String(),
		"source": sourceScheduled,
	})
	if s.closed || ctx.Err() != nil {
		return
	}

	idx := s.indexOf(orderID)
	if idx < 0 {
		s.logg.Warn(ctx, "orders.transition.order_missing")
		return
	}
	if !s.orders[idx].Status.CanAdvanceTo(status) {
		s.logg.Info(s.logg.WithField(ctx, "current", s.orders[idx].Status.String()), "orders.transition.skipped")
		return
	}
	if err := s.setStatusLocked(ctx, idx, status, sourceScheduled); err != nil {
		return
	}
	if status == enums.OrderStatusReady {
		delete(s.pending, orderID)
	}
}

// setStatusLocked persists the status change before applying it.
func (s *service) setStatusLocked(ctx context.Context, idx int, status enums.OrderStatus, source string) error {
	next := make([]Order, len(s.orders))
	copy(next, s.orders)
	updated := next[idx]
	previous := updated.Status
	updated.Status = status
	next[idx] = updated

	if err := s.repo.Save(ctx, next); err != nil {
		s.logg.Error(ctx, "orders.persist_failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save orders")
	}
	s.orders = next
	s.metrics.IncStatusTransition(status.String(), source)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"from":   previous.String(),
		"to":     status.String(),
		"source": source,
	})
	s.logg.Info(ctx, "orders.status_changed")
	return nil
}

func (s *service) scheduleLocked(ctx context.Context, orderID string, status enums.OrderStatus, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	h, err := s.scheduler.After("order."+statusEventName(status), delay, func(cbCtx context.Context) {
		s.applyScheduled(cbCtx, orderID, status)
	})
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "status", status.String()), "orders.schedule_failed", err)
		return fmt.Errorf("schedule %s for order %s: %w", status, orderID, err)
	}
	s.pending[orderID] = append(s.pending[orderID], h)
	return nil
}

func (s *service) cancelPendingLocked(orderID string) {
	for _, h := range s.pending[orderID] {
		h.Cancel()
	}
	delete(s.pending, orderID)
}

func (s *service) resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	var errs error
	resumed := 0
	for _, o := range s.orders {
		if o.HasCustomCake() {
			continue
		}
		elapsed := now.Sub(o.CreatedAt)
		octx := s.logg.WithOrderID(ctx, o.ID)
		if o.Status.CanAdvanceTo(enums.OrderStatusPreparing) {
			errs = multierr.Append(errs, s.scheduleLocked(octx, o.ID, enums.OrderStatusPreparing, s.cfg.PreparingDelay-elapsed))
		}
		if o.Status.CanAdvanceTo(enums.OrderStatusReady) {
			errs = multierr.Append(errs, s.scheduleLocked(octx, o.ID, enums.OrderStatusReady, s.cfg.ReadyDelay-elapsed))
			resumed++
		}
	}
	s.logg.Info(s.logg.WithField(ctx, "orders", resumed), "orders.resume.scheduled")
	return errs
}

func (s *service) indexOf(orderID string) int {
	for i, o := range s.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}

// nextID derives an id from the creation time, bumping it until unique.
// Caller holds s.mu.
func (s *service) nextID(now time.Time) string {
	millis := now.UnixMilli()
	for {
		id := strconv.FormatInt(millis, 10)
		if s.indexOf(id) < 0 {
			return id
		}
		millis++
	}
}

// pickupTime takes the pickup date of the first customized line that has
// one, combined with its pickup time when that parses as HH:MM.
func pickupTime(items []cart.LineItem, loc *time.Location) *time.Time {
	for _, it := range items {
		opts := it.CustomOptions
		if opts == nil || opts.PickupDate == "" {
			continue
		}
		day, err := time.ParseInLocation(product.PickupDateLayout, opts.PickupDate, loc)
		if err != nil {
			continue
		}
		if clock, err := time.Parse(pickupTimeLayout, opts.PickupTime); err == nil {
			day = day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		}
		return &day
	}
	return nil
}

func statusEventName(status enums.OrderStatus) string {
	switch status {
	case enums.OrderStatusPreparing:
		return "preparing"
	case enums.OrderStatusReady:
		return "ready"
	case enums.OrderStatusCompleted:
		return "completed"
	default:
		return "received"
	}
}
