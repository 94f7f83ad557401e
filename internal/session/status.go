package session

import (
	"sync"
	"time"
)

// Status holds the one-line message shown to the user. Each message falls
// back to the idle text after a fixed delay; a newer message restarts the
// countdown.
type Status struct {
	mu       sync.Mutex
	msg      string
	idle     string
	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	onChange func(string)
}

func NewStatus(idle string, delay time.Duration) *Status {
	return &Status{msg: idle, idle: idle, delay: delay}
}

// OnChange registers fn to be called with every new message, including the
// reset to idle. fn must not call back into Status.
func (s *Status) OnChange(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Status) Set(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.reset(gen) })
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

func (s *Status) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

func (s *Status) Idle() string {
	return s.idle
}

// Stop cancels a pending reset.
func (s *Status) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Status) reset(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.msg = s.idle
	s.timer = nil
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(s.idle)
	}
}
