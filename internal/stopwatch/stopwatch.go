// Package stopwatch measures wall time across node invocations.
package stopwatch

import (
	"fmt"
	"sync"
	"time"
)

// Action is a stopwatch command.
type Action string

const (
	// Start begins timing if the watch is idle and reports the current
	// elapsed time otherwise.
	Start Action = "start"
	// Lap reports the time since start without stopping.
	Lap Action = "lap"
	// Stop reports the final elapsed time and returns the watch to idle.
	Stop Action = "stop"
	// Reset returns the watch to idle and reports zero.
	Reset Action = "reset"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case Start, Lap, Stop, Reset:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown stopwatch action %q", s)
	}
}

// Clock returns the current time.
type Clock func() time.Time

// Watch is a resettable stopwatch. It is safe for concurrent use.
type Watch struct {
	mu      sync.Mutex
	now     Clock
	started time.Time
	running bool
}

// New creates an idle watch. A nil clock means time.Now.
func New(now Clock) *Watch {
	if now == nil {
		now = time.Now
	}
	return &Watch{now: now}
}

// Do applies an action and returns the elapsed time it reports.
func (w *Watch) Do(a Action) (time.Duration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch a {
	case Start:
		if !w.running {
			w.started = w.now()
			w.running = true
			return 0, nil
		}
		return w.now().Sub(w.started), nil
	case Lap:
		if !w.running {
			return 0, nil
		}
		return w.now().Sub(w.started), nil
	case Stop:
		if !w.running {
			return 0, nil
		}
		w.running = false
		return w.now().Sub(w.started), nil
	case Reset:
		w.running = false
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown stopwatch action %q", a)
	}
}

// Running reports whether the watch is timing.
func (w *Watch) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Pass returns v unchanged. It marks the value a timed node forwards.
func Pass[T any](v T) T { return v }

// Format renders d as HH:MM:SS.mmm.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
