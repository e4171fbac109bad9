package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/paoquentinho/storefront/pkg/metrics"
)

// Timer schedules events on the wall clock with time.AfterFunc.
type Timer struct {
	mu      sync.Mutex
	pending map[*timerHandle]struct{}
	closed  bool
	running sync.WaitGroup

	ctx     context.Context
	cancel  context.CancelFunc
	metrics *metrics.SchedulerMetrics
}

func NewTimer(m *metrics.SchedulerMetrics) *Timer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Timer{
		pending: make(map[*timerHandle]struct{}),
		ctx:     ctx,
		cancel:  cancel,
		metrics: m,
	}
}

type timerHandle struct {
	owner *Timer
	name  string
	timer *time.Timer
}

func (t *Timer) After(name string, delay time.Duration, fn Func) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}

	h := &timerHandle{owner: t, name: name}
	t.pending[h] = struct{}{}
	h.timer = time.AfterFunc(delay, func() { t.fire(h, fn) })
	t.metrics.IncScheduled(name, delay)
	return h, nil
}

func (t *Timer) fire(h *timerHandle, fn Func) {
	t.mu.Lock()
	if _, ok := t.pending[h]; !ok || t.closed {
		t.mu.Unlock()
		return
	}
	delete(t.pending, h)
	t.running.Add(1)
	t.mu.Unlock()

	defer t.running.Done()
	t.metrics.IncFired(h.name)
	fn(t.ctx)
}

func (h *timerHandle) Cancel() bool {
	t := h.owner
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.pending[h]; !ok {
		return false
	}
	delete(t.pending, h)
	h.timer.Stop()
	t.metrics.IncCanceled(h.name)
	return true
}

// Pending reports how many events have not fired yet.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

func (t *Timer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	for h := range t.pending {
		h.timer.Stop()
		t.metrics.IncCanceled(h.name)
	}
	t.pending = map[*timerHandle]struct{}{}
	t.mu.Unlock()

	t.cancel()
	t.running.Wait()
	return nil
}
