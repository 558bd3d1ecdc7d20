package controller

import (
	"fmt"

	"jfrogext/internal/settings"
	"jfrogext/internal/tui/model"
	"jfrogext/internal/tui/view"
	"jfrogext/pkg/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update is the central message routing function for the TUI application.
// It directs each message to its handler and queues the resulting commands.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg.(type) {
	case spinner.TickMsg, model.NewLogEntryMsg:
	default:
		if m.DebugMode {
			logging.Debug(controllerDispatchSubsystem, "Received msg: %T", msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case model.SettingsLoadedMsg:
		return handleSettingsLoaded(m, msg)

	case model.SaveFinishedMsg:
		if !msg.OK {
			// The controller already reported the failure; the form stays as it was.
			m.SyncInputsFromDraft()
		}
		return m, nil

	case model.ConnectionTestedMsg:
		return m, nil

	case model.NavigateMsg:
		m, cmd := handleNavigate(m, msg)
		return m, tea.Batch(cmd, model.ChannelReaderCmd(m.TUIChannel))

	case model.NoticeMsg:
		cmd := m.SetStatusMessage(msg.Text, msg.Type, model.StatusMessageTTL)
		return m, tea.Batch(cmd, model.ChannelReaderCmd(m.TUIChannel))

	case model.SetupEventMsg:
		return handleSetupEvent(m, msg)

	case model.SetupEventsClosedMsg:
		return m, nil

	case model.NewLogEntryMsg:
		handleNewLogEntry(m, msg)
		return m, model.ListenForLogEntriesCmd(m.LogChannel)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}
		return m, nil
	}

	return m, nil
}

func handleSettingsLoaded(m *model.Model, msg model.SettingsLoadedMsg) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.Err != nil {
		cmds = append(cmds, m.SetStatusMessage(
			fmt.Sprintf("Could not load settings: %v", msg.Err), model.StatusBarError, model.StatusMessageTTL))
	}
	m.SyncInputsFromDraft()
	if m.Page == model.PageSettings {
		cmds = append(cmds, m.EnsureFocus())
	}
	return m, tea.Batch(cmds...)
}

func handleNavigate(m *model.Model, msg model.NavigateMsg) (*model.Model, tea.Cmd) {
	logging.Debug(controllerSubsystem, "Navigating to %s", msg.Route)
	switch msg.Route {
	case settings.RouteScan:
		return quit(m, msg.Route)
	case settings.RouteSetupEnv:
		if m.Setup == nil {
			return m, m.SetStatusMessage("Environment setup is not available", model.StatusBarWarning, model.StatusMessageTTL)
		}
		return m, m.StartSetup()
	}
	return m, nil
}

func handleSetupEvent(m *model.Model, msg model.SetupEventMsg) (*model.Model, tea.Cmd) {
	// Events of a run started before the current one are stale.
	if m.SetupStatus.RunID != "" && msg.Event.RunID != m.SetupStatus.RunID {
		return m, model.ListenForSetupEventsCmd(m.SetupEvents)
	}
	m.SetupStatus.Stage = msg.Event.Stage
	m.SetupStatus.Exited = msg.Event.Exited
	m.SetupStatus.ExitCode = msg.Event.ExitCode
	m.SetupStatus.Err = msg.Event.Err
	m.SetupStatus.UpdatedAt = msg.Event.Time

	var cmds []tea.Cmd
	if msg.Event.Stage.IsTerminal() && m.Page == model.PageSetup {
		if msg.Event.Err != nil {
			cmds = append(cmds, m.SetStatusMessage("Environment setup failed", model.StatusBarError, model.StatusMessageTTL))
		} else {
			cmds = append(cmds, m.SetStatusMessage("Environment setup finished", model.StatusBarSuccess, model.StatusMessageTTL))
		}
	}
	cmds = append(cmds, model.ListenForSetupEventsCmd(m.SetupEvents))
	return m, tea.Batch(cmds...)
}

func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) {
	// DEBUG entries are only shown in debug mode.
	if msg.Entry.Level < logging.LevelInfo && !m.DebugMode {
		return
	}
	model.AddRawLineToActivityLog(m, model.FormatLogEntry(msg.Entry))
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
	m.LogViewport.GotoBottom()
}

func quit(m *model.Model, route settings.Route) (*model.Model, tea.Cmd) {
	m.Quitting = true
	m.FinalRoute = route
	if m.StopSetupEvents != nil {
		m.StopSetupEvents()
		m.StopSetupEvents = nil
	}
	return m, tea.Quit
}
