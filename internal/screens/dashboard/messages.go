package dashboard

import (
	"github.com/abhisek/sumclock/internal/adder"
)

// projectionMsg carries a new state projection from the container.
type projectionMsg adder.Projection

// containerClosedMsg is sent when the container subscription ends.
type containerClosedMsg struct{}

// sendFailedMsg is sent when an action could not be delivered.
type sendFailedMsg struct {
	Err error
}
