package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"jfrogext/internal/config"
	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
)

// CLIFeedback implements settings.Navigator and settings.Notifier for the
// non-interactive commands. Notices are written to the output; the last
// route and failure are kept for the caller.
type CLIFeedback struct {
	out io.Writer

	mu      sync.Mutex
	route   settings.Route
	lastErr string
}

// NewCLIFeedback creates feedback writing to out.
func NewCLIFeedback(out io.Writer) *CLIFeedback {
	return &CLIFeedback{out: out}
}

func (f *CLIFeedback) Navigate(route settings.Route) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.route = route
}

func (f *CLIFeedback) Success(msg string) {
	fmt.Fprintln(f.out, msg)
}

func (f *CLIFeedback) Error(msg string) {
	f.mu.Lock()
	f.lastErr = msg
	f.mu.Unlock()
	fmt.Fprintln(f.out, msg)
}

// Route returns the last route the controller navigated to.
func (f *CLIFeedback) Route() settings.Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.route
}

// Err returns the last reported failure, if any.
func (f *CLIFeedback) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastErr == "" {
		return nil
	}
	return errors.New(f.lastErr)
}

// NewCLIController creates a loaded settings controller reporting to out.
func NewCLIController(ctx context.Context, deps settings.Deps, out io.Writer) (*settings.Controller, *CLIFeedback, error) {
	feedback := NewCLIFeedback(out)
	deps.Navigator = feedback
	deps.Notifier = feedback
	ctrl := settings.NewController(deps)
	if err := ctrl.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return ctrl, feedback, nil
}

// PrintSettings writes a summary of the persisted settings. Secrets are
// never printed.
func PrintSettings(ctx context.Context, out io.Writer, deps settings.Deps) error {
	ctrl, _, err := NewCLIController(ctx, deps, out)
	if err != nil {
		return err
	}
	state := ctrl.State()
	saved := state.Saved

	auth := "basic"
	if saved.UsesAccessToken() {
		auth = "access token"
	}
	rows := [][2]string{
		{"Environment URL", saved.URL},
		{"Authentication", auth},
		{"Username", saved.Username},
		{"Policy", state.SavedPolicy.String()},
	}
	switch state.SavedPolicy {
	case config.PolicyProject:
		rows = append(rows, [2]string{"Project", saved.Project})
	case config.PolicyWatches:
		rows = append(rows, [2]string{"Watches", strings.Join(config.WatchList(saved), ", ")})
	}
	rows = append(rows,
		[2]string{"Xray version", state.Versions.Xray},
		[2]string{"JFrog CLI version", state.Versions.CLI},
	)

	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "not available"
		}
		if _, err := fmt.Fprintf(out, "%-18s %s\n", row[0]+":", value); err != nil {
			return err
		}
	}
	return nil
}

// SetupRunner runs the environment setup and reports stage changes.
type SetupRunner interface {
	Subscribe(buffer int) (<-chan setup.Event, func())
	SetupEnv(ctx context.Context) setup.Status
}

// RunSetup runs the environment setup to completion and prints each stage
// change. It fails when the run ends in the Error stage.
func RunSetup(ctx context.Context, out io.Writer, runner SetupRunner) (setup.Status, error) {
	events, stop := runner.Subscribe(16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for evt := range events {
			fmt.Fprintln(out, describeEvent(evt))
		}
	}()

	status := runner.SetupEnv(ctx)
	stop()
	<-done

	if status.Stage == setup.StageError {
		if status.Err == nil {
			return status, errors.New("environment setup failed")
		}
		return status, fmt.Errorf("environment setup failed: %w", status.Err)
	}
	return status, nil
}

func describeEvent(evt setup.Event) string {
	switch evt.Stage {
	case setup.StageWaitingForUser:
		return "Waiting for you to complete the registration in your browser..."
	case setup.StagePreparingEnv:
		return "Your new JFrog environment is being built..."
	case setup.StageDone:
		if evt.Exited && evt.ExitCode != 0 {
			return fmt.Sprintf("Setup finished (exit code %d).", evt.ExitCode)
		}
		return "Your JFrog environment is ready."
	case setup.StageError:
		return fmt.Sprintf("Setup failed: %v", evt.Err)
	}
	return evt.Stage.String()
}
