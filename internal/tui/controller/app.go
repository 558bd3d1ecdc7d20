package controller

import (
	"jfrogext/internal/settings"
	"jfrogext/internal/tui/model"
	"jfrogext/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// settingsApp is the tea.Model handed to the program. It owns terminal
// layout and leaves everything else to Update.
type settingsApp struct {
	m *model.Model
}

func newSettingsApp(m *model.Model) *settingsApp {
	return &settingsApp{m: m}
}

func (a *settingsApp) Init() tea.Cmd {
	return a.m.Init()
}

func (a *settingsApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		applyWindowSize(a.m, size)
		return a, nil
	}
	var cmd tea.Cmd
	a.m, cmd = Update(msg, a.m)
	return a, cmd
}

func (a *settingsApp) View() string {
	return view.Render(a.m)
}

// finalRoute is where the user asked to go when the program ended.
func (a *settingsApp) finalRoute() settings.Route {
	return a.m.FinalRoute
}

// applyWindowSize fits inputs, help and the log panel to the terminal.
func applyWindowSize(m *model.Model, msg tea.WindowSizeMsg) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = msg.Width

	inputWidth := min(max(msg.Width-30, 20), 60)
	for field, in := range m.Inputs {
		in.Width = inputWidth
		m.Inputs[field] = in
	}

	m.LogViewport.Width = msg.Width - 4
	m.LogViewport.Height = model.LogPanelHeight
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
	m.LogViewport.GotoBottom()
}
