package adder

// Action is the closed set of inputs accepted by Reduce.
type Action interface {
	action()
	String() string
}

// SetA sets the first operand.
type SetA struct{ Value int }

// SetB sets the second operand.
type SetB struct{ Value int }

// Start starts the elapsed-time timer, replacing any running one.
type Start struct{}

// End cancels the running timer, if any.
type End struct{}

// TimerTicked is delivered by the timer effect once per period.
type TimerTicked struct{}

func (SetA) action()        {}
func (SetB) action()        {}
func (Start) action()       {}
func (End) action()         {}
func (TimerTicked) action() {}

func (a SetA) String() string      { return "setA(" + itoa(a.Value) + ")" }
func (b SetB) String() string      { return "setB(" + itoa(b.Value) + ")" }
func (Start) String() string       { return "start" }
func (End) String() string         { return "end" }
func (TimerTicked) String() string { return "timerTicked" }
