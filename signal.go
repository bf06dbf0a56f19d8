package helios

// Signal is a single-fire readiness event. Waiters registered before Fire run
// when it fires; waiters registered afterwards run immediately. Firing twice
// is a no-op.
type Signal struct {
	fired   bool
	waiters []func()
}

// NewSignal creates an unfired signal.
func NewSignal() *Signal {
	return &Signal{}
}

// Fire marks the signal fired and runs the pending waiters in registration order.
func (s *Signal) Fire() {
	if s.fired {
		return
	}
	s.fired = true
	waiters := s.waiters
	s.waiters = nil
	for _, fn := range waiters {
		fn()
	}
}

// Wait runs fn once the signal has fired.
func (s *Signal) Wait(fn func()) {
	if s.fired {
		fn()
		return
	}
	s.waiters = append(s.waiters, fn)
}

// Fired reports whether Fire has been called.
func (s *Signal) Fired() bool {
	return s.fired
}
