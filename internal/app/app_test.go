package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sumclock/internal/config"
	"github.com/abhisek/sumclock/internal/container"
	"github.com/abhisek/sumclock/internal/router"
	"github.com/abhisek/sumclock/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }

func testModel(t *testing.T) AppModel {
	t.Helper()
	c := container.New(container.Options{TimerPeriod: time.Hour})
	t.Cleanup(func() { c.Close() })
	return newAppModel(Options{Container: c, Config: config.DefaultConfig()})
}

func resized(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestViewRendersDashboard(t *testing.T) {
	m := resized(testModel(t), 80, 30)

	content := m.render()
	assert.True(t, strings.Contains(content, "Sumclock"))
	assert.True(t, strings.Contains(content, "A + B"))
	assert.True(t, strings.Contains(content, "Quit"))
}

func TestViewTooSmall(t *testing.T) {
	m := resized(testModel(t), 20, 10)
	assert.True(t, strings.Contains(m.render(), "Terminal too small"))
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc at root does nothing")

	m.router.Push(&stubScreen{})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
