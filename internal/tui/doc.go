// Package tui contains the terminal user interface for the extension
// settings. It is split into the following sub-packages:
//
//   - model: application state, messages and commands
//   - controller: message dispatch and key handling
//   - view: rendering of the settings and setup pages
//   - design: colors and styles
//   - components: reusable rendering pieces
//   - utils: string helpers
//
// The controller package exposes Run, which starts a bubbletea program
// wired to a settings.Controller and a setup tracker.
package tui
