// Package config provides configuration management for jfrogext.
//
// Two kinds of configuration live here.
//
// # Application configuration
//
// AppConfig describes how jfrogext reaches its collaborators: the CLI wrapper
// scripts used for environment setup, the JFrog CLI binary, the connection test
// timeout and where the extension configuration is stored. It is loaded in
// layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. User configuration (~/.config/jfrogext/config.yaml)
//  3. Project configuration (./.jfrogext/config.yaml)
//  4. JFROGEXT_* environment variables
//
// LoadConfigFromPath replaces layers 2 and 3 with a single directory.
//
//	cli:
//	  scriptDir: /opt/jfrog-extension/bin
//	  script: runcli.sh
//	  windowsScript: runcli.bat
//	  binary: jf
//	  minVersion: 2.0.0
//	setup:
//	  args: ["setup", "--format=machine"]
//	  sentinel: PREPARING_ENV
//	verify:
//	  timeout: 30s
//
// # Extension configuration
//
// ExtensionConfig is the record the settings form edits: platform URL,
// authentication mode, credentials and the scanning policy selector (project or
// watch list). Reconcile turns a form draft into the record that may be
// persisted, and Store persists it with secrets held in the OS keyring.
package config
