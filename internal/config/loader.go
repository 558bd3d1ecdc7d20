package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osExecutable = os.Executable
var osGetenv = os.Getenv

const (
	userConfigDir     = ".config/jfrogext"
	projectConfigDir  = ".jfrogext"
	configFileName    = "config.yaml"
	extensionFileName = "extension.yaml"

	envPrefix = "JFROGEXT_"
)

// LoadConfig loads the jfrogext configuration by layering default, user, and project settings,
// then applying JFROGEXT_* environment overrides.
func LoadConfig() (AppConfig, error) {
	cfg := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if cfg, err = mergeFileIfExists(cfg, userConfigPath); err != nil {
		return AppConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if cfg, err = mergeFileIfExists(cfg, projectConfigPath); err != nil {
		return AppConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	return finalize(applyEnvOverrides(cfg)), nil
}

// LoadConfigFromPath loads configuration from a single directory, skipping the user and project layers.
func LoadConfigFromPath(dir string) (AppConfig, error) {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return AppConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg, err := mergeFileIfExists(GetDefaultConfig(), path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(dir, extensionFileName)
	}
	return finalize(applyEnvOverrides(cfg)), nil
}

var getUserConfigPath = func() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

func mergeFileIfExists(base AppConfig, path string) (AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads an AppConfig from a YAML file.
func loadConfigFromFile(filePath string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return AppConfig{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Only fields set in the overlay win.
func mergeConfigs(base, overlay AppConfig) AppConfig {
	merged := base

	merged.CLI.ScriptDir = firstNonEmpty(overlay.CLI.ScriptDir, merged.CLI.ScriptDir)
	merged.CLI.Script = firstNonEmpty(overlay.CLI.Script, merged.CLI.Script)
	merged.CLI.WindowsScript = firstNonEmpty(overlay.CLI.WindowsScript, merged.CLI.WindowsScript)
	merged.CLI.Binary = firstNonEmpty(overlay.CLI.Binary, merged.CLI.Binary)
	merged.CLI.MinVersion = firstNonEmpty(overlay.CLI.MinVersion, merged.CLI.MinVersion)

	if len(overlay.Setup.Args) > 0 {
		merged.Setup.Args = append([]string(nil), overlay.Setup.Args...)
	}
	merged.Setup.Sentinel = firstNonEmpty(overlay.Setup.Sentinel, merged.Setup.Sentinel)

	if overlay.Verify.Timeout > 0 {
		merged.Verify.Timeout = overlay.Verify.Timeout
	}
	merged.Keyring.Service = firstNonEmpty(overlay.Keyring.Service, merged.Keyring.Service)
	merged.Storage.Path = firstNonEmpty(overlay.Storage.Path, merged.Storage.Path)
	merged.Log.Level = firstNonEmpty(overlay.Log.Level, merged.Log.Level)

	return merged
}

func applyEnvOverrides(cfg AppConfig) AppConfig {
	if v := osGetenv(envPrefix + "CLI_SCRIPT"); v != "" {
		cfg.CLI.Script = v
		cfg.CLI.WindowsScript = v
	}
	if v := osGetenv(envPrefix + "CLI_SCRIPT_DIR"); v != "" {
		cfg.CLI.ScriptDir = v
	}
	if v := osGetenv(envPrefix + "CLI_BINARY"); v != "" {
		cfg.CLI.Binary = v
	}
	if v := osGetenv(envPrefix + "STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := osGetenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.ToLower(osGetenv(envPrefix + "DEBUG")); v == "1" || v == "true" {
		cfg.Log.Level = "debug"
	}
	return cfg
}

// finalize fills in values that depend on the host rather than on any layer.
func finalize(cfg AppConfig) AppConfig {
	if cfg.Storage.Path == "" {
		if dir, err := GetUserConfigDir(); err == nil {
			cfg.Storage.Path = filepath.Join(dir, extensionFileName)
		}
	}
	if cfg.CLI.ScriptDir == "" {
		if exe, err := osExecutable(); err == nil {
			cfg.CLI.ScriptDir = filepath.Dir(exe)
		}
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
