package toast

import (
	"sync"
	"time"

	"tasks-cli/internal/domain"
)

// ClosingSeconds is the countdown every new toast starts from.
const ClosingSeconds = 6

// State identifies the scheduler's position in its two-state machine.
type State int

const (
	// StateIdle means no toast is live.
	StateIdle State = iota
	// StateShowing means one toast is live with a running countdown.
	StateShowing
)

// tickerFactory produces the countdown tick source. Swapped out in tests so
// ticks can be driven manually.
type tickerFactory func() (<-chan time.Time, func())

func defaultTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)
	return t.C, t.Stop
}

// Scheduler manages the single live toast. Showing a new toast replaces any
// existing one and invalidates its countdown timer first, so two timers never
// race; at most one countdown is active system-wide.
type Scheduler struct {
	mu        sync.Mutex
	current   *domain.Toast
	stop      chan struct{}
	onChange  func(*domain.Toast)
	newTicker tickerFactory
}

// New creates a scheduler. onChange, if non-nil, is invoked with a snapshot
// of the live toast after every transition, and with nil when the scheduler
// goes idle.
func New(onChange func(*domain.Toast)) *Scheduler {
	return newScheduler(onChange, defaultTicker)
}

func newScheduler(onChange func(*domain.Toast), newTicker tickerFactory) *Scheduler {
	return &Scheduler{
		onChange:  onChange,
		newTicker: newTicker,
	}
}

// Show transitions to showing with a fresh countdown, replacing any toast
// already live.
func (s *Scheduler) Show(toastType domain.ToastType, message string) {
	s.mu.Lock()
	s.stopTimerLocked()
	s.current = &domain.Toast{
		Type:             toastType,
		Message:          message,
		ClosingInSeconds: ClosingSeconds,
	}
	stop := make(chan struct{})
	s.stop = stop
	tick, cancel := s.newTicker()
	snapshot := *s.current
	s.mu.Unlock()

	s.notify(&snapshot)
	go s.countdown(stop, tick, cancel)
}

// countdown drives the per-second ticks for one toast's lifetime. Each tick
// is applied through advance with this countdown's own stop channel, so a
// tick that was already in flight when the toast got replaced cannot touch
// the replacement.
func (s *Scheduler) countdown(stop chan struct{}, tick <-chan time.Time, cancel func()) {
	defer cancel()
	for {
		select {
		case <-stop:
			return
		case <-tick:
			if !s.advance(stop) {
				return
			}
		}
	}
}

// Tick advances the live countdown by one step. A toast whose remaining time
// is already at or below one second is dismissed rather than counted down to
// zero. Returns false once the scheduler is idle.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	owner := s.stop
	s.mu.Unlock()
	if owner == nil {
		return false
	}
	return s.advance(owner)
}

// advance applies one countdown step on behalf of the countdown identified by
// owner. A stale owner means the toast it was counting down has been replaced
// or dismissed; its tick is dropped.
func (s *Scheduler) advance(owner chan struct{}) bool {
	s.mu.Lock()
	if s.current == nil || s.stop != owner {
		s.mu.Unlock()
		return false
	}
	if s.current.ClosingInSeconds <= 1 {
		s.current = nil
		s.stopTimerLocked()
		s.mu.Unlock()
		s.notify(nil)
		return false
	}
	s.current.ClosingInSeconds--
	snapshot := *s.current
	s.mu.Unlock()

	s.notify(&snapshot)
	return true
}

// Dismiss immediately transitions to idle and cancels the countdown,
// regardless of remaining time.
func (s *Scheduler) Dismiss() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.stopTimerLocked()
	s.mu.Unlock()

	s.notify(nil)
}

// Current returns a snapshot of the live toast, or nil when idle.
func (s *Scheduler) Current() *domain.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}

// State returns the scheduler's current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return StateIdle
	}
	return StateShowing
}

// stopTimerLocked releases the active countdown, if any. Callers must hold mu.
func (s *Scheduler) stopTimerLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Scheduler) notify(t *domain.Toast) {
	if s.onChange != nil {
		s.onChange(t)
	}
}
