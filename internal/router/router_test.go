package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sumclock/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(PushScreenMsg{Screen: s2})
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestViewRendersActive(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	if got := r.View(80, 24); got != "first" {
		t.Errorf("View() = %q, want %q", got, "first")
	}
}

// disposableScreen records Dispose calls.
type disposableScreen struct {
	stubScreen
	disposed int
}

func (d *disposableScreen) Dispose() { d.disposed++ }

func TestPopDisposesScreen(t *testing.T) {
	r := New(&stubScreen{title: "root"})
	top := &disposableScreen{stubScreen: stubScreen{title: "top"}}
	r.Push(top)

	r.Pop()

	if top.disposed != 1 {
		t.Errorf("expected Dispose once, got %d", top.disposed)
	}
}

func TestCloseDisposesAll(t *testing.T) {
	root := &disposableScreen{stubScreen: stubScreen{title: "root"}}
	r := New(root)
	top := &disposableScreen{stubScreen: stubScreen{title: "top"}}
	r.Push(top)

	r.Close()

	if root.disposed != 1 || top.disposed != 1 {
		t.Errorf("expected both disposed, got root=%d top=%d", root.disposed, top.disposed)
	}
	if r.Depth() != 0 || r.Active() != nil {
		t.Error("expected empty stack after Close")
	}
}
