package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/router"
	"github.com/abhisek/edunova/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "generator" }
func (s *stubScreen) Title() string                           { return "Generator" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(100, 30), "Learning adventures")

	sendTicks(w, 5)
	assert.Equal(t, 500*time.Millisecond, w.elapsed)

	sendTicks(w, 10)
	assert.Contains(t, w.View(100, 30), "Learning adventures")
}

func TestElapsedCapped(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 60)
	assert.Equal(t, totalDur, w.elapsed)
	assert.Zero(t, *calls, "no transition without a key press")
}

func TestKeypressReplacesScreen(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)
	assert.Equal(t, 1, *calls)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd, "second key press does nothing")
	assert.Equal(t, 1, *calls)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "ticks stop after the transition")
}

func TestBannerFallback(t *testing.T) {
	assert.Contains(t, RenderBanner(40), "E D U N O V A")
	assert.True(t, strings.Contains(RenderBanner(100), "███"))
}
