package view

import (
	"fmt"
	"strings"

	"jfrogext/internal/tui/components"
	"jfrogext/internal/tui/design"
	"jfrogext/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 80

// Render draws the whole screen for the current page.
func Render(m *model.Model) string {
	if m.Quitting {
		return ""
	}
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}

	var body string
	switch m.Page {
	case model.PageSetup:
		body = renderSetupPage(m)
	default:
		body = renderSettingsPage(m, width)
	}

	sections := []string{
		design.TitleStyle.Render("JFrog Environment Settings"),
		body,
	}
	if m.ShowLog {
		sections = append(sections, renderLogPanel(m, width))
	}
	if m.ShowHelp {
		sections = append(sections, m.Help.FullHelpView(m.Keys.FullHelp()))
	} else {
		sections = append(sections, design.TextSecondaryStyle.Render(m.Help.ShortHelpView(m.Keys.ShortHelp())))
	}
	sections = append(sections, renderStatusBar(m, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStatusBar(m *model.Model, width int) string {
	bar := components.NewStatusBar(width).
		WithLeftText(fmt.Sprintf("Page: %s", m.Page)).
		WithRightText(statusRightText(m))
	if m.StatusBarMessage != "" {
		bar.WithMessage(m.StatusBarMessage, m.StatusBarMessageType)
	}
	return bar.Render()
}

func statusRightText(m *model.Model) string {
	if m.Page == model.PageSetup {
		return "Setup: " + m.SetupStatus.Stage.String()
	}
	state := m.Settings.State()
	var parts []string
	switch {
	case state.Loading:
		parts = append(parts, "loading")
	case state.Saving:
		parts = append(parts, "saving")
	case state.Testing:
		parts = append(parts, "testing connection")
	}
	parts = append(parts, "Policy: "+state.Policy.String())
	return strings.Join(parts, " • ")
}
