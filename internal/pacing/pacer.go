package pacing

// Package pacing decides when deferred battle steps run. The engine only
// exposes a synchronous Advance; a Pacer calls it after a cosmetic delay
// through a Scheduler, so tests can fire steps without sleeping.

import (
	"errors"
	"sync"
	"time"

	"github.com/ericogr/ninja-arena/internal/engine"
)

// Delays between a turn boundary and the deferred step that follows it.
type Delays struct {
	Opponent  time.Duration
	Auto      time.Duration
	FreshAuto time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Opponent:  700 * time.Millisecond,
		Auto:      600 * time.Millisecond,
		FreshAuto: 400 * time.Millisecond,
	}
}

// For returns the delay for step.
func (d Delays) For(step engine.Step, fresh bool) time.Duration {
	switch step {
	case engine.StepOpponent:
		return d.Opponent
	case engine.StepAuto:
		if fresh {
			return d.FreshAuto
		}
		return d.Auto
	}
	return 0
}

// Driver is a battle the pacer can advance. Implementations serialize
// access to the underlying engine.Battle.
type Driver interface {
	Pending() (step engine.Step, freshAuto bool)
	Advance() ([]engine.Event, error)
}

// Sink receives the outcome of every step the pacer runs.
type Sink func(events []engine.Event, err error)

type Pacer struct {
	sched  Scheduler
	delays Delays
}

func New(s Scheduler, d Delays) *Pacer {
	if s == nil {
		s = Clock()
	}
	return &Pacer{sched: s, delays: d}
}

// Run paces one battle. At most one step is scheduled at a time.
type Run struct {
	p    *Pacer
	d    Driver
	sink Sink

	mu      sync.Mutex
	timer   Timer
	stopped bool
	done    chan struct{}
}

// Start begins pacing d and immediately schedules any pending step.
func (p *Pacer) Start(d Driver, sink Sink) *Run {
	r := &Run{p: p, d: d, sink: sink, done: make(chan struct{})}
	r.Kick()
	return r
}

// Kick schedules the next deferred step if one is due and none is queued.
// Call it after a manual player action or an auto-mode toggle.
func (r *Run) Kick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.timer != nil {
		return
	}
	step, fresh := r.d.Pending()
	if step == engine.StepNone {
		return
	}
	r.timer = r.p.sched.AfterFunc(r.p.delays.For(step, fresh), r.fire)
}

// Stop cancels any queued step. It is safe to call more than once.
func (r *Run) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	close(r.done)
}

// Done is closed once the run stops, either explicitly or on resolution.
func (r *Run) Done() <-chan struct{} { return r.done }

func (r *Run) fire() {
	r.mu.Lock()
	r.timer = nil
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return
	}

	events, err := r.d.Advance()
	if err != nil && errors.Is(err, engine.ErrNothingPending) {
		// auto mode was switched off while the step was queued
		return
	}
	if r.sink != nil {
		r.sink(events, err)
	}
	if err != nil || resolved(events) {
		r.Stop()
		return
	}
	r.Kick()
}

func resolved(events []engine.Event) bool {
	for _, ev := range events {
		if ev.Kind == engine.EventResolved {
			return true
		}
	}
	return false
}
