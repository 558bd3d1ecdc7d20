// Package setup provisions a new JFrog environment through the CLI wrapper
// script and tracks its progress.
//
// The Tracker is an explicit state object: callers hold a reference to it and
// either poll Stage/Snapshot or Subscribe to stage events. The Executor is the
// seam to the process that does the real work; ProcessExecutor runs the
// platform-specific wrapper (runcli.sh or runcli.bat) with
// "setup --format=machine" and streams its output line by line.
//
// The CLI prints the sentinel line PREPARING_ENV once the user has completed
// the interactive part and the environment is being built. The process exit
// is reported as StageDone whatever the exit code; the code is kept in the
// Status for display.
package setup
