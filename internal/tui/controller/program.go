package controller

import (
	"context"
	"fmt"

	"jfrogext/internal/settings"
	"jfrogext/internal/tui/model"
	"jfrogext/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramOptions configure the interactive settings program.
type ProgramOptions struct {
	Settings   settings.Deps
	Setup      model.SetupRunner
	LogChannel <-chan logging.LogEntry
	DebugMode  bool
	StartPage  model.Page
}

// NewProgram creates the Bubble Tea program. The settings controller is
// wired to the TUI through a bridge so navigation and notifications arrive
// as messages.
func NewProgram(ctx context.Context, opts ProgramOptions) (*tea.Program, *model.Model) {
	tuiChannel := make(chan tea.Msg, 100)
	bridge := model.NewBridge(ctx, tuiChannel)

	deps := opts.Settings
	deps.Navigator = bridge
	deps.Notifier = bridge

	m := model.InitialModel(model.Options{
		Ctx:        ctx,
		Settings:   settings.NewController(deps),
		Setup:      opts.Setup,
		TUIChannel: tuiChannel,
		LogChannel: opts.LogChannel,
		DebugMode:  opts.DebugMode,
		StartPage:  opts.StartPage,
	})

	p := tea.NewProgram(newSettingsApp(m), tea.WithAltScreen(), tea.WithContext(ctx))
	return p, m
}

// Run starts the program and blocks until it exits. It returns the route the
// user left the settings for, empty when the program was quit.
func Run(ctx context.Context, opts ProgramOptions) (settings.Route, error) {
	p, _ := NewProgram(ctx, opts)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running TUI program: %w", err)
	}
	app, ok := final.(*settingsApp)
	if !ok {
		return "", nil
	}
	return app.finalRoute(), nil
}
