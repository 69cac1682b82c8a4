package adder

import "time"

// TimerPeriod is the cadence of the elapsed-time timer.
const TimerPeriod = time.Second

// Command is a side effect requested by the reducer and executed by the
// container. A nil Command means no effect.
type Command interface {
	command()
}

// StartTimer asks for a periodic timer. Any timer already running for the
// session is cancelled first.
type StartTimer struct {
	Period time.Duration
}

// CancelTimer asks for the running timer to stop. It is a no-op when idle.
type CancelTimer struct{}

func (StartTimer) command()  {}
func (CancelTimer) command() {}
