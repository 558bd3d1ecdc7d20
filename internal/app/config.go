package app

import (
	"jfrogext/internal/config"
	"jfrogext/internal/tui/model"
)

// Config holds the application configuration
type Config struct {
	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// ConfigPath loads configuration from a single directory instead of the
	// layered user/project locations.
	ConfigPath string

	// SetupFirst opens the environment setup flow instead of the settings form.
	SetupFirst bool

	// Loaded tool configuration
	AppConfig *config.AppConfig
}

// NewConfig creates a new application configuration
func NewConfig(noTUI, debug bool, configPath string) *Config {
	return &Config{
		NoTUI:      noTUI,
		Debug:      debug,
		ConfigPath: configPath,
	}
}

func (c *Config) startPage() model.Page {
	if c.SetupFirst {
		return model.PageSetup
	}
	return model.PageSettings
}
