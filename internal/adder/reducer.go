package adder

import "strconv"

// Reduce applies a to s and returns the next state together with the effect
// to run, if any. It never fails and never mutates its input.
func Reduce(s State, a Action) (State, Command) {
	switch a := a.(type) {
	case SetA:
		s.A = a.Value
		s.recalculate()
	case SetB:
		s.B = a.Value
		s.recalculate()
	case Start:
		// Restarting while running still issues StartTimer; the container
		// cancels the in-flight timer before replacing it.
		s.Timer = TimerRunning
		return s, StartTimer{Period: TimerPeriod}
	case End:
		if s.Timer == TimerIdle {
			return s, nil
		}
		s.Timer = TimerIdle
		return s, CancelTimer{}
	case TimerTicked:
		s.Seconds++
	}
	return s, nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
