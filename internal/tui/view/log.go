package view

import (
	"strings"

	"jfrogext/internal/tui/design"
	"jfrogext/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderLogPanel(m *model.Model, width int) string {
	title := design.SectionTitleStyle.Render("Activity Log")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.PanelStyle.
		Width(width - design.PanelStyle.GetHorizontalBorderSize()).
		Render(content)
}

// PrepareLogContent applies color styles based on log level markers.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
