// Package markettest provides deterministic randomness for simulation tests.
package markettest

import "sync"

// ScriptedRand replays queued values. Once a queue is empty it keeps returning
// the configured defaults, so tests only script the draws they care about.
type ScriptedRand struct {
	mu           sync.Mutex
	floats       []float64
	ints         []int
	DefaultFloat float64
	DefaultInt   int
}

func New() *ScriptedRand {
	return &ScriptedRand{}
}

// Floats queues values for Float64.
func (s *ScriptedRand) Floats(v ...float64) *ScriptedRand {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, v...)
	return s
}

// Ints queues values for IntN. Each value is reduced modulo n when drawn.
func (s *ScriptedRand) Ints(v ...int) *ScriptedRand {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, v...)
	return s
}

func (s *ScriptedRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return s.DefaultFloat
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *ScriptedRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.DefaultInt
	if len(s.ints) > 0 {
		v = s.ints[0]
		s.ints = s.ints[1:]
	}
	return ((v % n) + n) % n
}
