package model

import (
	"context"

	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
	"jfrogext/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadSettingsCmd loads the persisted settings into the controller.
func LoadSettingsCmd(ctx context.Context, c *settings.Controller) tea.Cmd {
	return func() tea.Msg {
		return SettingsLoadedMsg{Err: c.Load(ctx)}
	}
}

// SaveSettingsCmd saves the current draft.
func SaveSettingsCmd(ctx context.Context, c *settings.Controller) tea.Cmd {
	return func() tea.Msg {
		return SaveFinishedMsg{OK: c.Save(ctx)}
	}
}

// TestConnectionCmd runs the connection test. The result arrives as a notice.
func TestConnectionCmd(ctx context.Context, c *settings.Controller) tea.Cmd {
	return func() tea.Msg {
		c.TestConnection(ctx)
		return ConnectionTestedMsg{}
	}
}

// ChannelReaderCmd waits for the next message on the TUI channel.
func ChannelReaderCmd(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return <-ch
	}
}

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// ListenForSetupEventsCmd waits for the next setup stage change.
func ListenForSetupEventsCmd(ch <-chan setup.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return SetupEventsClosedMsg{}
		}
		return SetupEventMsg{Event: evt}
	}
}
