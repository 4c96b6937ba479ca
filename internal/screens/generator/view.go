package generator

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/study"
	"github.com/abhisek/edunova/internal/ui/components"
	"github.com/abhisek/edunova/internal/ui/theme"
)

// Caption describes what a result was generated for.
func Caption(req content.Request) string {
	return fmt.Sprintf("Generated for ages %s • Topic: %s", req.AgeGroup, req.Topic)
}

func (s *GeneratorScreen) View(width, height int) string {
	if s.alert != "" {
		return components.Modal(s.alert, width, height)
	}

	cw := components.ContentWidth(width)
	form := s.renderForm(cw)

	var sections []string
	sections = append(sections, form)

	if s.voiceNote != "" {
		sections = append(sections, theme.Hint.Render(s.voiceNote))
	}

	if s.result != nil {
		used := lipgloss.Height(form) + len(sections)
		sections = append(sections, s.renderResult(cw, height-used-1))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *GeneratorScreen) renderForm(cw int) string {
	ct := s.ContentType()
	highlight := lipgloss.NewStyle().Foreground(theme.TypeColor(ct)).Bold(true)

	var b strings.Builder
	b.WriteString(theme.Label.Render("🎂 Age group") + "   " + s.ages.View(theme.Selected) + "\n\n")
	b.WriteString(theme.Label.Render("🎨 What do you want to make?") + "\n")
	b.WriteString(s.types.View(highlight) + "\n\n")
	b.WriteString(theme.Label.Render("🔍 Topic") + "\n")
	b.WriteString(s.topic.View() + "\n\n")
	b.WriteString(s.renderButton(ct))

	return b.String()
}

func (s *GeneratorScreen) renderButton(ct content.ContentType) string {
	label := "✨ Generate " + ct.Info().Label
	if s.loading {
		return components.NewButton(s.spinner.View()+" Creating your "+strings.ToLower(ct.Info().Label)+"...", true).View()
	}
	disabled := strings.TrimSpace(s.topic.Value()) == ""
	return components.NewButton(label, disabled).View()
}

func (s *GeneratorScreen) renderResult(cw, height int) string {
	res := s.result
	info := res.Request.ContentType.Info()

	head := theme.Title.Render(fmt.Sprintf("🎉 Your %s", info.Label))
	switch {
	case s.copied:
		head += "  " + theme.Correct.Render("✓ Copied!")
	case s.notice != "" && s.noticeBad:
		head += "  " + theme.Warning.Render(s.notice)
	case s.notice != "":
		head += "  " + theme.Notice.Render(s.notice)
	}

	lines := []string{head, theme.Caption.Render(Caption(res.Request))}
	if summary := s.studySummary(); summary != "" {
		lines = append(lines, theme.Hint.Render(summary))
	}

	paneHeight := max(height-len(lines)-2, 3)
	s.pane.SetWidth(cw - 4)
	s.pane.SetHeight(paneHeight)

	body := s.pane.View()
	if res.Failed() {
		body = theme.Warning.Render(body)
	}
	lines = append(lines, body)

	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *GeneratorScreen) studySummary() string {
	switch v := s.view.(type) {
	case *study.FlashcardSession:
		return fmt.Sprintf("%d flashcards ready, %d flipped. Press ctrl+o to study.", v.Len(), v.FlippedCount())
	case *study.QuizSession:
		if v.Completed() {
			return fmt.Sprintf("Quiz done: %d/%d correct. Press ctrl+o to review.", v.Score(), v.Len())
		}
		return fmt.Sprintf("%d questions ready. Press ctrl+o to take the quiz.", v.Len())
	}
	return ""
}
