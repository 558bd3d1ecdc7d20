package config

import (
	"time"
)

// AppConfig is the top-level configuration structure for jfrogext.
// It describes how the tool reaches its collaborators; the connection details
// themselves live in ExtensionConfig.
type AppConfig struct {
	CLI     CLIConfig     `yaml:"cli"`
	Setup   SetupConfig   `yaml:"setup"`
	Verify  VerifyConfig  `yaml:"verify"`
	Keyring KeyringConfig `yaml:"keyring"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// CLIConfig points at the external CLI wrapper scripts and the JFrog CLI binary.
type CLIConfig struct {
	ScriptDir     string `yaml:"scriptDir,omitempty"`     // Directory holding the wrapper scripts (default: executable dir)
	Script        string `yaml:"script,omitempty"`        // Wrapper used on Unix-like systems
	WindowsScript string `yaml:"windowsScript,omitempty"` // Wrapper used on Windows
	Binary        string `yaml:"binary,omitempty"`        // JFrog CLI binary, queried for its version
	MinVersion    string `yaml:"minVersion,omitempty"`    // Lowest supported CLI version (semver)
}

// SetupConfig drives the environment provisioning command.
type SetupConfig struct {
	Args     []string `yaml:"args,omitempty"`
	Sentinel string   `yaml:"sentinel,omitempty"`
}

// VerifyConfig configures the connection test.
type VerifyConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// KeyringConfig names the OS keyring service that stores secrets.
type KeyringConfig struct {
	Service string `yaml:"service,omitempty"`
}

// StorageConfig locates the persisted extension configuration.
type StorageConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LogConfig sets the default log level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}
