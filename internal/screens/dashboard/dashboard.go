package dashboard

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/config"
	"github.com/abhisek/sumclock/internal/router"
	"github.com/abhisek/sumclock/internal/screen"
	"github.com/abhisek/sumclock/internal/screens/history"
	"github.com/abhisek/sumclock/internal/store"
	"github.com/abhisek/sumclock/internal/ui/components"
	"github.com/abhisek/sumclock/internal/ui/layout"
	"github.com/abhisek/sumclock/internal/ui/theme"
)

// Container is the part of the state container the dashboard talks to.
type Container interface {
	Send(a adder.Action) error
	State() adder.State
	Subscribe() (<-chan adder.Projection, func())
}

// DashboardScreen shows the elapsed counter, the two steppers and their sum.
// Stepper changes are forwarded as actions; labels only ever show the
// container's projection.
type DashboardScreen struct {
	container   Container
	eventRepo   store.EventRepo
	keys        keyMap
	steppers    [2]components.Stepper
	focus       int
	view        adder.Projection
	sub         <-chan adder.Projection
	unsubscribe func()
	closed      bool
	errMsg      string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.StatusProvider = (*DashboardScreen)(nil)
var _ screen.Disposer = (*DashboardScreen)(nil)

// New creates the dashboard and subscribes to c. eventRepo may be nil, in
// which case the history screen is unavailable.
func New(c Container, cfg config.Config, eventRepo store.EventRepo) *DashboardScreen {
	state := c.State()
	sub, unsubscribe := c.Subscribe()

	s := &DashboardScreen{
		container:   c,
		eventRepo:   eventRepo,
		keys:        defaultKeyMap(),
		view:        state.Project(),
		sub:         sub,
		unsubscribe: unsubscribe,
	}
	s.steppers[0] = components.NewStepper("A", state.A, cfg.A.Min, cfg.A.Max, cfg.A.Step)
	s.steppers[1] = components.NewStepper("B", state.B, cfg.B.Min, cfg.B.Max, cfg.B.Step)
	s.steppers[0].Focused = true
	s.keys.History.SetEnabled(eventRepo != nil)
	return s
}

func (s *DashboardScreen) Init() tea.Cmd {
	return tea.Batch(
		s.listen(),
		s.send(adder.Start{}),
	)
}

func (s *DashboardScreen) Title() string {
	return "A + B"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return s.keys.hints()
}

func (s *DashboardScreen) Status() string {
	if s.view.Running {
		return theme.Running.Render("● running")
	}
	return theme.Stopped.Render("○ stopped")
}

// Dispose releases the state subscription.
func (s *DashboardScreen) Dispose() {
	s.unsubscribe()
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case projectionMsg:
		s.view = adder.Projection(msg)
		return s, s.listen()

	case containerClosedMsg:
		s.closed = true
		return s, nil

	case sendFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.moveFocus(-1)
	case key.Matches(msg, s.keys.Down):
		s.moveFocus(1)
	case key.Matches(msg, s.keys.Inc):
		return s, s.step(s.steppers[s.focus].Increment())
	case key.Matches(msg, s.keys.Dec):
		return s, s.step(s.steppers[s.focus].Decrement())
	case key.Matches(msg, s.keys.Start):
		return s, s.send(adder.Start{})
	case key.Matches(msg, s.keys.Stop):
		return s, s.send(adder.End{})
	case key.Matches(msg, s.keys.History):
		repo := s.eventRepo
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(repo)}
		}
	}
	return s, nil
}

func (s *DashboardScreen) moveFocus(delta int) {
	s.steppers[s.focus].Focused = false
	s.focus = (s.focus + delta + len(s.steppers)) % len(s.steppers)
	s.steppers[s.focus].Focused = true
}

// step stores the changed stepper and sends the matching field-set action.
// Nothing is sent when the stepper is pinned at a bound.
func (s *DashboardScreen) step(next components.Stepper) tea.Cmd {
	if next.Value == s.steppers[s.focus].Value {
		return nil
	}
	s.steppers[s.focus] = next
	if s.focus == 0 {
		return s.send(adder.SetA{Value: next.Value})
	}
	return s.send(adder.SetB{Value: next.Value})
}

func (s *DashboardScreen) send(a adder.Action) tea.Cmd {
	c := s.container
	return func() tea.Msg {
		if err := c.Send(a); err != nil {
			return sendFailedMsg{Err: err}
		}
		return nil
	}
}

// listen waits for the next projection. It is re-armed after every
// projectionMsg so exactly one read is outstanding.
func (s *DashboardScreen) listen() tea.Cmd {
	sub := s.sub
	return func() tea.Msg {
		p, ok := <-sub
		if !ok {
			return containerClosedMsg{}
		}
		return projectionMsg(p)
	}
}

func (s *DashboardScreen) View(width, height int) string {
	seconds, _ := strconv.Atoi(s.view.Seconds)
	elapsed := lipgloss.JoinVertical(lipgloss.Center,
		theme.Subtitle.Render("elapsed seconds"),
		theme.Display.Width(20).Render(s.view.Seconds),
		components.NewMinuteBar(seconds, 30).View(),
	)

	inputs := lipgloss.JoinVertical(lipgloss.Left,
		s.steppers[0].View(s.view.A),
		"",
		s.steppers[1].View(s.view.B),
	)

	total := lipgloss.JoinVertical(lipgloss.Center,
		theme.Subtitle.Render("a + b"),
		theme.Display.Width(20).Render(s.view.APlusB),
	)

	parts := []string{elapsed, "", inputs, "", total}
	if s.errMsg != "" {
		parts = append(parts, "", theme.Failure.Render(s.errMsg))
	} else if s.closed {
		parts = append(parts, "", theme.Hint.Render("session ended"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
