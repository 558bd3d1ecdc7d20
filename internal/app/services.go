package app

import (
	"errors"

	"jfrogext/internal/config"
	"jfrogext/internal/platform"
	"jfrogext/internal/settings"
	"jfrogext/internal/setup"
)

// Services holds the collaborators shared by the CLI and TUI modes.
type Services struct {
	Store    *config.Store
	Verifier *platform.HTTPVerifier
	Versions *platform.VersionProbe
	Tracker  *setup.Tracker
}

// InitializeServices creates the store, platform clients and setup tracker
// from the loaded configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg == nil || cfg.AppConfig == nil {
		return nil, errors.New("configuration has not been loaded")
	}
	appCfg := *cfg.AppConfig

	store := config.NewStoreFromConfig(appCfg)
	executor := setup.NewProcessExecutor(appCfg.CLI.ScriptDir)

	return &Services{
		Store:    store,
		Verifier: platform.NewHTTPVerifier(store, appCfg.Verify.Timeout),
		Versions: platform.NewVersionProbe(store, appCfg),
		Tracker:  setup.NewTracker(executor, setup.OptionsFromConfig(appCfg)),
	}, nil
}

// SettingsDeps returns the settings controller collaborators. Navigation and
// notification are left to the caller.
func (s *Services) SettingsDeps() settings.Deps {
	return settings.Deps{
		Store:    s.Store,
		Verifier: s.Verifier,
		Versions: s.Versions,
	}
}
