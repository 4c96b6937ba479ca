package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/content"
)

// Color palette, tuned for dark terminals.
var (
	Primary   = lipgloss.Color("#A855F7") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#EC4899") // Pink
	Sunshine  = lipgloss.Color("#FACC15") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// typeColors gives each content type its accent color.
var typeColors = map[content.ContentType]color.Color{
	content.LessonPlan: lipgloss.Color("#A855F7"),
	content.Flashcards: lipgloss.Color("#EAB308"),
	content.Quiz:       lipgloss.Color("#22C55E"),
	content.StudyGuide: lipgloss.Color("#3B82F6"),
	content.Tutorial:   lipgloss.Color("#EF4444"),
}

// TypeColor returns the highlight color for a content type.
func TypeColor(t content.ContentType) color.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return Primary
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Sunshine).
		Bold(true)

	Caption = lipgloss.NewStyle().
		Foreground(TextDim)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Success)

	Warning = lipgloss.NewStyle().
		Foreground(Error)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)

	Modal = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Error).
		Padding(1, 3).
		Align(lipgloss.Center)

	CardFront = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	CardBack = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Success).
			Padding(0, 1)
)
