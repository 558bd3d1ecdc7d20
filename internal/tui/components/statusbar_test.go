package components

import (
	"strings"
	"testing"

	"jfrogext/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_Render(t *testing.T) {
	tests := []struct {
		name     string
		bar      *StatusBar
		contains []string
		excludes []string
	}{
		{
			name:     "left and right text",
			bar:      NewStatusBar(60).WithLeftText("Page: Settings").WithRightText("Policy: Watches"),
			contains: []string{"Page: Settings", "Policy: Watches"},
		},
		{
			name:     "message replaces texts",
			bar:      NewStatusBar(60).WithLeftText("Page: Settings").WithMessage("Saved", model.StatusBarSuccess),
			contains: []string{"Saved"},
			excludes: []string{"Page: Settings"},
		},
		{
			name:     "right text dropped when too narrow",
			bar:      NewStatusBar(20).WithLeftText("Page: Settings").WithRightText("Policy: All Vulnerabilities"),
			contains: []string{"Page:"},
			excludes: []string{"Vulnerabilities"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.bar.Render()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestStatusBar_RenderKeepsWidth(t *testing.T) {
	for _, width := range []int{0, 10, 40, 120} {
		out := NewStatusBar(width).
			WithMessage(strings.Repeat("long message ", 20), model.StatusBarError).
			Render()
		assert.LessOrEqual(t, lipgloss.Width(out), width+1, "width %d", width)
	}
}
