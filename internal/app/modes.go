package app

import (
	"context"
	"fmt"
	"io"

	"jfrogext/internal/settings"
	"jfrogext/internal/tui/controller"
	"jfrogext/pkg/logging"
)

// runCLIMode executes the non-interactive command line mode
func runCLIMode(ctx context.Context, cfg *Config, services *Services, out io.Writer) error {
	logging.Debug("CLI", "Running in no-TUI mode.")

	if cfg.SetupFirst {
		status, err := RunSetup(ctx, out, services.Tracker)
		if err != nil {
			return err
		}
		logging.Info("CLI", "Setup run %s finished in stage %s", status.RunID, status.Stage)
		return nil
	}
	return PrintSettings(ctx, out, services.SettingsDeps())
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, cfg *Config, services *Services, out io.Writer) error {
	logging.Debug("CLI", "Starting TUI mode...")

	// Switch logging to channel-based system for TUI integration
	logChan := logging.InitForTUI(levelFor(cfg, cfg.AppConfig))
	defer logging.CloseTUIChannel()

	route, err := controller.Run(ctx, controller.ProgramOptions{
		Settings:   services.SettingsDeps(),
		Setup:      services.Tracker,
		LogChannel: logChan,
		DebugMode:  cfg.Debug,
		StartPage:  cfg.startPage(),
	})
	if err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited with route %q.", route)

	if route == settings.RouteScan {
		fmt.Fprintln(out, scanHint)
	}
	return nil
}

const scanHint = "Settings are ready. Run 'jf audit' in your project to scan it with the configured policy."
