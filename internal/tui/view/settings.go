package view

import (
	"strings"

	"jfrogext/internal/config"
	"jfrogext/internal/settings"
	"jfrogext/internal/tui/design"
	"jfrogext/internal/tui/model"
	"jfrogext/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

const policyHint = "Optionally use the Watches/Project fields to allow the security and license compliance " +
	"information displayed on the scan results, to reflect the security policies required by your organization."

func renderSettingsPage(m *model.Model, width int) string {
	state := m.Settings.State()
	if state.Loading {
		return m.Spinner.View() + " Loading settings..."
	}

	var b strings.Builder
	b.WriteString(design.SectionTitleStyle.Render("JFrog Environment Connection Details"))
	b.WriteString("\n")
	if state.EditingConnection {
		b.WriteString(renderCredentialsForm(m, state))
	} else {
		b.WriteString(renderConnectionDetails(m, state, width))
	}
	b.WriteString("\n")

	toggleLabel := "Edit Connection Details"
	if state.EditingConnection {
		toggleLabel = "Back"
	}
	buttons := []string{renderButton(m, model.FieldEditToggle, toggleLabel, true, false)}
	if state.EditingConnection {
		buttons = append(buttons, renderButton(m, model.FieldTestConnection, "Test Connection",
			state.CanTestConnection || state.Testing, state.Testing))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(buttons)...))
	b.WriteString("\n\n")

	b.WriteString(design.SectionTitleStyle.Render("Scanning Policy"))
	b.WriteString("\n")
	b.WriteString(design.TextSecondaryStyle.Render(utils.TruncateString(policyHint, width-2)))
	b.WriteString("\n")
	b.WriteString(renderPolicy(m, state))
	b.WriteString("\n\n")

	footer := []string{
		renderButton(m, model.FieldCancel, "Cancel", !state.Saving, false),
		renderButton(m, model.FieldSave, "Save", state.CanSave || state.Saving, state.Saving),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(footer)...))
	return b.String()
}

func renderConnectionDetails(m *model.Model, state settings.State, width int) string {
	valueWidth := width - design.LabelWidth - 4
	lines := []string{
		settingsLine(m, model.FieldURLLink, "Environment URL:", state.Saved.URL, valueWidth),
		settingsLine(m, model.FieldXrayLink, "Xray Version:", state.Versions.Xray, valueWidth),
		settingsLine(m, model.FieldCLILink, "CLI Version:", state.Versions.CLI, valueWidth),
	}
	return strings.Join(lines, "\n")
}

// settingsLine renders a label with a value that doubles as a copyable link.
func settingsLine(m *model.Model, field model.Field, label, value string, valueWidth int) string {
	rendered := design.TextSecondaryStyle.Render("not available")
	if value != "" {
		rendered = design.LinkStyle.Render(utils.TruncateString(value, valueWidth))
	}
	return focusMarker(m, field) + design.LabelStyle.Render(label) + rendered
}

func renderCredentialsForm(m *model.Model, state settings.State) string {
	var lines []string

	createLabel := "Don't have a JFrog environment? " + design.LinkStyle.Render("Create one for FREE")
	if state.Saving {
		createLabel = design.TextSecondaryStyle.Render("Don't have a JFrog environment? Create one for FREE")
	}
	lines = append(lines, focusMarker(m, model.FieldCreateEnv)+createLabel)
	lines = append(lines, renderInput(m, model.FieldURL, "JFrog Environment URL"))
	lines = append(lines, focusMarker(m, model.FieldAuthType)+design.LabelStyle.Render("Authentication")+
		radioGroup([]string{"Basic", "Access Token"}, authIndex(state.Draft)))

	if state.Draft.UsesAccessToken() {
		lines = append(lines, renderInput(m, model.FieldAccessToken, "Access Token"))
	} else {
		lines = append(lines, renderInput(m, model.FieldUsername, "Username"))
		lines = append(lines, renderInput(m, model.FieldPassword, "Password"))
	}
	return strings.Join(lines, "\n")
}

func renderPolicy(m *model.Model, state settings.State) string {
	lines := []string{
		focusMarker(m, model.FieldPolicy) + radioGroup(
			[]string{"All Vulnerabilities", "JFrog Project", "Watches"}, int(state.Policy)),
	}
	switch state.Policy {
	case config.PolicyProject:
		lines = append(lines, renderInput(m, model.FieldProject, "Project"))
	case config.PolicyWatches:
		lines = append(lines, renderInput(m, model.FieldWatches, "Watches"))
	}
	return strings.Join(lines, "\n")
}

func renderInput(m *model.Model, field model.Field, label string) string {
	in := m.Inputs[field]
	style := design.InputStyle
	if m.Focus == field {
		style = design.InputFocusedStyle
	}
	box := style.Render(in.View())
	return lipgloss.JoinHorizontal(lipgloss.Center,
		focusMarker(m, field)+design.LabelStyle.Render(label), box)
}

func renderButton(m *model.Model, field model.Field, label string, enabled, busy bool) string {
	if busy {
		label = m.Spinner.View() + " " + label
	}
	style := design.ButtonStyle
	switch {
	case !enabled:
		style = design.ButtonDisabledStyle
	case m.Focus == field:
		style = design.ButtonFocusedStyle
	}
	return style.Render(label)
}

func radioGroup(options []string, selected int) string {
	parts := make([]string, len(options))
	for i, opt := range options {
		if i == selected {
			parts[i] = design.FocusMarkerStyle.Render("(•) " + opt)
		} else {
			parts[i] = "( ) " + opt
		}
	}
	return strings.Join(parts, "   ")
}

func authIndex(cfg config.ExtensionConfig) int {
	if cfg.UsesAccessToken() {
		return 1
	}
	return 0
}

func focusMarker(m *model.Model, field model.Field) string {
	if m.Focus == field {
		return design.FocusMarkerStyle.Render("> ")
	}
	return "  "
}

func joinWithGap(items []string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, item)
	}
	return out
}
