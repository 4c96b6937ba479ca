// Package history lists recorded generations from the audit log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/router"
	"github.com/abhisek/edunova/internal/screen"
	"github.com/abhisek/edunova/internal/store"
	"github.com/abhisek/edunova/internal/ui/layout"
	"github.com/abhisek/edunova/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	events []store.GenerationEventRecord
	err    error
}

// HistoryScreen displays past generation requests, newest first.
type HistoryScreen struct {
	repo     store.EventRepo
	events   []store.GenerationEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryGenerations(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{events: events, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.events = msg.events
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	case len(s.events) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  Nothing generated yet. Pick a topic and press Enter!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, ev := range s.events {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+Line(ev))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Caption.Render("    "+Detail(ev))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Line summarizes one event on a single row.
func Line(ev store.GenerationEventRecord) string {
	label := content.ContentType(ev.ContentType).Info().Label
	status := "✓"
	if ev.Failed {
		status = "✗"
	}
	return fmt.Sprintf("%s  %s  %-12s ages %-4s  %s",
		status, ev.Timestamp.Local().Format("Jan 02 15:04"), label, ev.AgeGroup, ev.Topic)
}

// Detail describes the outcome of one event.
func Detail(ev store.GenerationEventRecord) string {
	if ev.Failed {
		return fmt.Sprintf("failed (%s) after %dms", ev.ErrorKind, ev.LatencyMs)
	}
	if ev.Items > 0 {
		return fmt.Sprintf("%d items in %dms", ev.Items, ev.LatencyMs)
	}
	return fmt.Sprintf("finished in %dms", ev.LatencyMs)
}
