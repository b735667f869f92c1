// Package search rate-limits search requests triggered by typing.
package search

import (
	"sync"
	"time"
)

// DefaultDelay is how long typing must pause before a search is sent.
const DefaultDelay = 500 * time.Millisecond

// Timer is a scheduled call that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Clock schedules calls. The real clock uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// Debouncer delays a search until keystrokes pause for the configured delay.
// It owns a single pending-timer slot: each keystroke replaces it.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	search  func(text string)
	pending Timer
	gen     uint64
}

type Option func(*Debouncer)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(d *Debouncer) { d.clock = c }
}

func NewDebouncer(delay time.Duration, search func(text string), opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		clock:  RealClock,
		delay:  delay,
		search: search,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Keystroke records the current text of the search field. The previous
// pending search, if any, is cancelled and a new one is scheduled for text.
func (d *Debouncer) Keystroke(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.clock.AfterFunc(d.delay, func() { d.fire(gen, text) })
}

// Cancel drops the pending search. A request already sent is not affected.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

// Pending reports whether a search is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// fire runs the search unless a later keystroke or Cancel superseded it.
// Stop alone cannot guarantee that once the timer goroutine has started.
func (d *Debouncer) fire(gen uint64, text string) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.search(text)
}
