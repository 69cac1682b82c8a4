package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sumclock/internal/adder"
	"github.com/abhisek/sumclock/internal/config"
	"github.com/abhisek/sumclock/internal/container"
	"github.com/abhisek/sumclock/internal/router"
	"github.com/abhisek/sumclock/internal/store"
)

// fakeContainer records sent actions and lets tests push projections.
type fakeContainer struct {
	mu      sync.Mutex
	state   adder.State
	sent    []adder.Action
	sendErr error
	ch      chan adder.Projection
}

func newFakeContainer(s adder.State) *fakeContainer {
	ch := make(chan adder.Projection, 1)
	ch <- s.Project()
	return &fakeContainer{state: s, ch: ch}
}

func (f *fakeContainer) Send(a adder.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, a)
	return nil
}

func (f *fakeContainer) State() adder.State { return f.state }

func (f *fakeContainer) Subscribe() (<-chan adder.Projection, func()) {
	return f.ch, func() {}
}

func (f *fakeContainer) actions() []adder.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]adder.Action(nil), f.sent...)
}

type mockEventRepo struct{}

func (mockEventRepo) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (mockEventRepo) RecentSessions(context.Context, int) ([]store.SessionSummary, error) {
	return nil, nil
}
func (mockEventRepo) Reset(context.Context) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// run executes cmd and feeds a non-nil result back into the screen.
func run(s *DashboardScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		s.Update(msg)
	}
}

func smallConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.A = config.Stepper{Min: 0, Max: 2, Step: 1}
	return cfg
}

func TestInitStartsTimer(t *testing.T) {
	fc := newFakeContainer(adder.State{})
	s := New(fc, smallConfig(), nil)

	cmd := s.Init()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch")
	for _, c := range batch {
		if c != nil {
			s.Update(c())
		}
	}

	assert.Contains(t, fc.actions(), adder.Action(adder.Start{}))
}

func TestSteppersSendFieldActions(t *testing.T) {
	fc := newFakeContainer(adder.State{})
	s := New(fc, smallConfig(), nil)

	_, cmd := s.Update(keyPress('+'))
	run(s, cmd)
	_, cmd = s.Update(specialKey(tea.KeyTab))
	run(s, cmd)
	_, cmd = s.Update(keyPress('-'))
	run(s, cmd)

	assert.Equal(t, []adder.Action{adder.SetA{Value: 1}, adder.SetB{Value: -1}}, fc.actions())
}

func TestStepperAtBoundSendsNothing(t *testing.T) {
	fc := newFakeContainer(adder.State{})
	s := New(fc, smallConfig(), nil)

	_, cmd := s.Update(keyPress('-'))
	assert.Nil(t, cmd)
	assert.Empty(t, fc.actions())
}

func TestStartAndStopKeys(t *testing.T) {
	fc := newFakeContainer(adder.State{})
	s := New(fc, smallConfig(), nil)

	_, cmd := s.Update(keyPress('p'))
	run(s, cmd)
	_, cmd = s.Update(keyPress('s'))
	run(s, cmd)

	assert.Equal(t, []adder.Action{adder.End{}, adder.Start{}}, fc.actions())
}

func TestFocusWraps(t *testing.T) {
	s := New(newFakeContainer(adder.State{}), smallConfig(), nil)

	s.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, s.focus)
	assert.True(t, s.steppers[1].Focused)
	assert.False(t, s.steppers[0].Focused)

	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 0, s.focus)
}

func TestProjectionUpdatesViewAndRearms(t *testing.T) {
	s := New(newFakeContainer(adder.State{}), smallConfig(), nil)

	_, cmd := s.Update(projectionMsg{Seconds: "12", A: "3", B: "4", APlusB: "7", Running: true})
	assert.NotNil(t, cmd, "listener must be re-armed")

	view := s.View(80, 30)
	assert.True(t, strings.Contains(view, "12"))
	assert.True(t, strings.Contains(view, "7"))
	assert.Contains(t, s.Status(), "running")
}

func TestSendFailureShown(t *testing.T) {
	fc := newFakeContainer(adder.State{})
	fc.sendErr = errors.New("container closed")
	s := New(fc, smallConfig(), nil)

	_, cmd := s.Update(keyPress('+'))
	run(s, cmd)

	assert.Contains(t, s.View(80, 30), "container closed")
}

func TestHistoryKeyRequiresRepo(t *testing.T) {
	s := New(newFakeContainer(adder.State{}), smallConfig(), nil)
	_, cmd := s.Update(keyPress('H'))
	assert.Nil(t, cmd)

	s = New(newFakeContainer(adder.State{}), smallConfig(), mockEventRepo{})
	_, cmd = s.Update(keyPress('H'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "History", push.Screen.Title())
}

func TestKeyHintsHideHistoryWithoutRepo(t *testing.T) {
	s := New(newFakeContainer(adder.State{}), smallConfig(), nil)
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "History", h.Description)
	}
}

func TestWithRealContainer(t *testing.T) {
	c := container.New(container.Options{TimerPeriod: time.Hour})
	s := New(c, config.DefaultConfig(), nil)

	// Initial projection.
	run(s, s.listen())

	_, cmd := s.Update(keyPress('+'))
	run(s, cmd)
	s.Update(specialKey(tea.KeyTab))
	_, cmd = s.Update(keyPress('+'))
	run(s, cmd)

	require.Eventually(t, func() bool { return c.State().APlusB == 2 }, time.Second, time.Millisecond)

	require.NoError(t, c.Close())
	// Drain until the closed subscription is observed.
	for !s.closed {
		run(s, s.listen())
	}
	assert.Contains(t, s.View(80, 30), "session ended")
}

func TestDisposeUnsubscribes(t *testing.T) {
	c := container.New(container.Options{TimerPeriod: time.Hour})
	defer c.Close()
	s := New(c, config.DefaultConfig(), nil)

	s.Dispose()

	for range s.sub {
	}
	msg := s.listen()()
	_, ok := msg.(containerClosedMsg)
	assert.True(t, ok)
}
