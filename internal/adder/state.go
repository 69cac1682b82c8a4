package adder

import "strconv"

// TimerPhase is the lifecycle of the elapsed-time timer as seen by the reducer.
type TimerPhase int

const (
	TimerIdle TimerPhase = iota
	TimerRunning
)

func (p TimerPhase) String() string {
	if p == TimerRunning {
		return "running"
	}
	return "idle"
}

// State is the whole application state. The zero value is the initial state.
type State struct {
	Seconds int
	A       int
	B       int
	APlusB  int // cached A + B, recomputed by the reducer

	Timer TimerPhase
}

// recalculate refreshes the derived sum.
func (s *State) recalculate() {
	s.APlusB = s.A + s.B
}

// Projection is the display form of State bound to view labels.
type Projection struct {
	Seconds string
	A       string
	B       string
	APlusB  string
	Running bool
}

// Project derives the display strings for s.
func (s State) Project() Projection {
	return Projection{
		Seconds: strconv.Itoa(s.Seconds),
		A:       strconv.Itoa(s.A),
		B:       strconv.Itoa(s.B),
		APlusB:  strconv.Itoa(s.APlusB),
		Running: s.Timer == TimerRunning,
	}
}
