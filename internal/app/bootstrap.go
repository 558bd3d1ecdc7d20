package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"jfrogext/internal/config"
	"jfrogext/pkg/logging"
)

// Application is the main application structure that bootstraps and runs jfrogext
type Application struct {
	config   *Config
	services *Services
	out      io.Writer
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	// Initialize logging for CLI output (will be replaced for TUI mode)
	logging.InitForCLI(levelFor(cfg, nil), os.Stderr)

	if cfg.AppConfig == nil {
		appCfg, err := loadAppConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.AppConfig = &appCfg
		logging.InitForCLI(levelFor(cfg, cfg.AppConfig), os.Stderr)
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
		out:      os.Stdout,
	}, nil
}

func loadAppConfig(path string) (config.AppConfig, error) {
	if path != "" {
		appCfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", path)
			return config.AppConfig{}, fmt.Errorf("failed to load configuration from path %s: %w", path, err)
		}
		logging.Info("Bootstrap", "Loaded configuration from custom path: %s", path)
		return appCfg, nil
	}

	appCfg, err := config.LoadConfig()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return config.AppConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	return appCfg, nil
}

// levelFor picks the log level: the debug flag wins over the configured level.
func levelFor(cfg *Config, appCfg *config.AppConfig) logging.LogLevel {
	if cfg.Debug {
		return logging.LevelDebug
	}
	if appCfg != nil && appCfg.Log.Level != "" {
		return logging.ParseLevel(appCfg.Log.Level)
	}
	return logging.LevelInfo
}

// Services exposes the initialized collaborators to subcommands.
func (a *Application) Services() *Services {
	return a.services
}

// SetOutput redirects user-facing CLI output.
func (a *Application) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	if a.config.NoTUI {
		return a.runCLIMode(ctx)
	}
	return a.runTUIMode(ctx)
}

// runCLIMode runs the application in non-interactive CLI mode
func (a *Application) runCLIMode(ctx context.Context) error {
	return runCLIMode(ctx, a.config, a.services, a.out)
}

// runTUIMode runs the application in interactive TUI mode
func (a *Application) runTUIMode(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services, a.out)
}
