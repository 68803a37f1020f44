package controller

import (
	"sync"
	"time"
)

// Ticket identifies one scheduled debounce. Only the most recent ticket can
// fire.
type Ticket uint64

// Debouncer is a trailing-edge timer without a goroutine of its own: the
// caller arranges for Due to be asked after Delay, which the TUI does with
// tea.Tick.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	gen     Ticket
	pending bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule supersedes any pending ticket and returns the new one.
func (d *Debouncer) Schedule() Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = true
	return d.gen
}

// Cancel drops the pending ticket, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.pending = false
}

// Pending reports whether a ticket is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Due reports whether t is the latest pending ticket. A due ticket is
// consumed, so Due returns true at most once per Schedule.
func (d *Debouncer) Due(t Ticket) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || t != d.gen {
		return false
	}
	d.pending = false
	return true
}
