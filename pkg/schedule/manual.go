package schedule

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance. Callbacks run on
// the goroutine that advances the clock.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	events []*manualEvent
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

type manualEvent struct {
	owner *Manual
	name  string
	due   time.Time
	seq   int
	fn    Func
	done  bool
}

func NewManual(start time.Time) *Manual {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manual{now: start, ctx: ctx, cancel: cancel}
}

func (m *Manual) After(name string, delay time.Duration, fn Func) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	m.seq++
	ev := &manualEvent{owner: m, name: name, due: m.now.Add(delay), seq: m.seq, fn: fn}
	m.events = append(m.events, ev)
	return ev, nil
}

func (e *manualEvent) Cancel() bool {
	m := e.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.done {
		return false
	}
	e.done = true
	m.removeLocked(e)
	return true
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d and runs every event that became
// due, in due order. Events scheduled by callbacks run too if they fall
// inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		ev := m.nextDue(target)
		if ev == nil {
			break
		}
		ev.fn(m.ctx)
	}

	m.mu.Lock()
	if target.After(m.now) {
		m.now = target
	}
	m.mu.Unlock()
}

// Flush runs every pending event regardless of its due time.
func (m *Manual) Flush() {
	for {
		ev := m.nextDue(time.Time{})
		if ev == nil {
			return
		}
		ev.fn(m.ctx)
	}
}

// Pending lists the names of events that have not fired, in due order.
func (m *Manual) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortLocked()
	names := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		names = append(names, ev.name)
	}
	return names
}

func (m *Manual) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, ev := range m.events {
		ev.done = true
	}
	m.events = nil
	m.cancel()
	return nil
}

// nextDue pops the earliest event due at or before limit. A zero limit
// matches any event.
func (m *Manual) nextDue(limit time.Time) *manualEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || len(m.events) == 0 {
		return nil
	}
	m.sortLocked()
	ev := m.events[0]
	if !limit.IsZero() && ev.due.After(limit) {
		return nil
	}
	m.events = m.events[1:]
	ev.done = true
	if ev.due.After(m.now) {
		m.now = ev.due
	}
	return ev
}

func (m *Manual) sortLocked() {
	sort.SliceStable(m.events, func(i, j int) bool {
		if m.events[i].due.Equal(m.events[j].due) {
			return m.events[i].seq < m.events[j].seq
		}
		return m.events[i].due.Before(m.events[j].due)
	})
}

func (m *Manual) removeLocked(target *manualEvent) {
	for i, ev := range m.events {
		if ev == target {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return
		}
	}
}
