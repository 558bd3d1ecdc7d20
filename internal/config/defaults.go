package config

import (
	"time"
)

const (
	DefaultScript        = "runcli.sh"
	DefaultWindowsScript = "runcli.bat"
	DefaultBinary        = "jf"
	DefaultMinVersion    = "2.0.0"
	DefaultSentinel      = "PREPARING_ENV"
	DefaultVerifyTimeout = 30 * time.Second
	DefaultKeyringName   = "jfrogext"
)

// DefaultSetupArgs asks the CLI for machine-readable progress output.
var DefaultSetupArgs = []string{"setup", "--format=machine"}

// GetDefaultConfig returns the built-in configuration every layer is merged onto.
func GetDefaultConfig() AppConfig {
	return AppConfig{
		CLI: CLIConfig{
			Script:        DefaultScript,
			WindowsScript: DefaultWindowsScript,
			Binary:        DefaultBinary,
			MinVersion:    DefaultMinVersion,
		},
		Setup: SetupConfig{
			Args:     append([]string(nil), DefaultSetupArgs...),
			Sentinel: DefaultSentinel,
		},
		Verify:  VerifyConfig{Timeout: DefaultVerifyTimeout},
		Keyring: KeyringConfig{Service: DefaultKeyringName},
		Log:     LogConfig{Level: "info"},
	}
}
