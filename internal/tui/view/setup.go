package view

import (
	"fmt"
	"strings"

	"jfrogext/internal/setup"
	"jfrogext/internal/tui/design"
	"jfrogext/internal/tui/model"
)

// StageDescription is the user-facing text for a setup stage.
func StageDescription(status setup.Status) string {
	switch status.Stage {
	case setup.StageIdle:
		return "Starting the environment setup..."
	case setup.StageWaitingForUser:
		return "Waiting for you to complete the registration in your browser..."
	case setup.StagePreparingEnv:
		return "Your new JFrog environment is being built. This may take a few minutes..."
	case setup.StageDone:
		if status.Exited && status.ExitCode != 0 {
			return fmt.Sprintf("Setup finished (exit code %d).", status.ExitCode)
		}
		return "Your JFrog environment is ready."
	case setup.StageError:
		if status.Err != nil {
			return "Setup failed: " + status.Err.Error()
		}
		return "Setup failed."
	}
	return ""
}

func renderSetupPage(m *model.Model) string {
	status := m.SetupStatus
	var b strings.Builder
	b.WriteString(design.SectionTitleStyle.Render("Create a JFrog Environment"))
	b.WriteString("\n\n")

	line := StageDescription(status)
	switch status.Stage {
	case setup.StageDone:
		line = design.TextSuccessStyle.Render(line)
	case setup.StageError:
		line = design.TextErrorStyle.Render(line)
	default:
		line = m.Spinner.View() + " " + line
	}
	b.WriteString(line)
	b.WriteString("\n\n")

	switch {
	case status.Stage == setup.StageError:
		b.WriteString(design.TextSecondaryStyle.Render("r retry • esc back to settings"))
	case status.Stage == setup.StageDone:
		b.WriteString(design.TextSecondaryStyle.Render("enter continue to scanning • r run again • esc back to settings"))
	default:
		b.WriteString(design.TextSecondaryStyle.Render("esc back to settings (the setup keeps running)"))
	}
	return b.String()
}
