package pacing

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clock struct{}

func (clock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Clock returns the wall-clock scheduler.
func Clock() Scheduler { return clock{} }

// ManualScheduler queues callbacks until Fire or FireAll is called.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	m     *ManualScheduler
	delay time.Duration
	f     func()
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{m: m, delay: d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Delays lists the delays of queued callbacks in scheduling order.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.pending))
	for _, t := range m.pending {
		out = append(out, t.delay)
	}
	return out
}

func (m *ManualScheduler) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Fire runs the oldest queued callback. It reports false when nothing is
// queued.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	t := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	t.f()
	return true
}

// FireAll runs callbacks until the queue is empty or limit is reached and
// returns how many ran.
func (m *ManualScheduler) FireAll(limit int) int {
	n := 0
	for n < limit && m.Fire() {
		n++
	}
	return n
}
