package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"jfrogext/pkg/logging"
)

// Script is a platform-specific reference to the CLI wrapper.
type Script struct {
	Unix    string
	Windows string
}

// ForOS picks the wrapper for the given GOOS value.
func (s Script) ForOS(goos string) string {
	if goos == "windows" && s.Windows != "" {
		return s.Windows
	}
	return s.Unix
}

// StreamKind names the pipe a line was read from.
type StreamKind int

const (
	StreamStdout StreamKind = iota
	StreamStderr
)

func (k StreamKind) String() string {
	if k == StreamStderr {
		return "stderr"
	}
	return "stdout"
}

// maxLineBytes caps a single emitted line; the rest of a longer line is discarded.
const maxLineBytes = 1024 * 1024

// Output is a single line of process output, without its line terminator.
type Output struct {
	Stream StreamKind
	Line   string
}

// StreamHandlers receive the streamed result of a command.
// OnOutput calls arrive in the order each stream produced them and are never
// concurrent; OnClose fires after the last OnOutput.
type StreamHandlers struct {
	OnOutput func(Output)
	OnError  func(error)
	OnClose  func(exitCode int)
}

func (h StreamHandlers) emitOutput(o Output) {
	if h.OnOutput != nil {
		h.OnOutput(o)
	}
}

func (h StreamHandlers) emitError(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h StreamHandlers) emitClose(code int) {
	if h.OnClose != nil {
		h.OnClose(code)
	}
}

// Executor runs an external script and streams its output.
// Stream blocks until the command has finished and returns the error that was
// also passed to OnError, if any. A non-zero exit is a close, not an error.
type Executor interface {
	Stream(ctx context.Context, script Script, args []string, h StreamHandlers) error
}

// ProcessExecutor runs scripts as local processes.
type ProcessExecutor struct {
	// Dir is joined with relative script references.
	Dir string
	// Env is appended to the inherited environment.
	Env []string

	goos string
}

// NewProcessExecutor creates an executor resolving scripts relative to dir.
func NewProcessExecutor(dir string, env ...string) *ProcessExecutor {
	return &ProcessExecutor{Dir: dir, Env: env, goos: runtime.GOOS}
}

func (e *ProcessExecutor) resolve(script Script) string {
	goos := e.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	name := script.ForOS(goos)
	if name == "" || filepath.IsAbs(name) || e.Dir == "" {
		return name
	}
	return filepath.Join(e.Dir, name)
}

// Stream implements Executor.
func (e *ProcessExecutor) Stream(ctx context.Context, script Script, args []string, h StreamHandlers) error {
	path := e.resolve(script)
	if path == "" {
		err := errors.New("no setup script configured")
		h.emitError(err)
		return err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), e.Env...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		err = fmt.Errorf("stdout pipe for %s: %w", path, err)
		h.emitError(err)
		return err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		err = fmt.Errorf("stderr pipe for %s: %w", path, err)
		h.emitError(err)
		return err
	}

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start %s: %w", path, err)
		h.emitError(err)
		return err
	}

	// Serialize handler calls across the two readers.
	var handlerMu sync.Mutex
	var wg sync.WaitGroup
	pump := func(r io.Reader, kind StreamKind) {
		defer wg.Done()
		err := readLines(r, func(line string) {
			handlerMu.Lock()
			h.emitOutput(Output{Stream: kind, Line: line})
			handlerMu.Unlock()
		})
		if err != nil {
			logging.Warn(subsystem, "Reading %s of %s: %v", kind, path, err)
			// Keep draining so the child never blocks on a full pipe.
			_, _ = io.Copy(io.Discard, r)
		}
	}

	wg.Add(2)
	go pump(stdoutPipe, StreamStdout)
	go pump(stderrPipe, StreamStderr)

	// Pipes must be drained before Wait closes them.
	wg.Wait()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		err := fmt.Errorf("%s interrupted: %w", path, ctxErr)
		h.emitError(err)
		return err
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		h.emitClose(0)
	case errors.As(waitErr, &exitErr):
		h.emitClose(exitErr.ExitCode())
	default:
		err := fmt.Errorf("waiting for %s: %w", path, waitErr)
		h.emitError(err)
		return err
	}
	return nil
}

// readLines calls emit for every line read from r until EOF. Lines longer
// than maxLineBytes are truncated and reading continues with the next line.
func readLines(r io.Reader, emit func(string)) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	pending := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if pending {
				emit(string(line))
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if room := maxLineBytes - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}
		if isPrefix {
			pending = true
			continue
		}
		emit(string(line))
		line = line[:0]
		pending = false
	}
}
