package mcpserver

import (
	"context"
	"errors"

	"jfrogext/internal/config"
	"jfrogext/internal/platform"
	"jfrogext/internal/setup"
	"jfrogext/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

const subsystem = "MCP"

// SettingsSource loads the persisted settings without secrets.
type SettingsSource interface {
	Load(ctx context.Context) (config.ExtensionConfig, error)
}

// ConnectionTester tests a connection. A nil override means the persisted one.
type ConnectionTester interface {
	TestConnection(ctx context.Context, override *config.ExtensionConfig) (string, error)
}

// VersionSource provides the platform and CLI versions.
type VersionSource interface {
	Versions(ctx context.Context) (platform.Versions, error)
}

// SetupRunner starts setup runs and reports the current stage.
type SetupRunner interface {
	Start(ctx context.Context) string
	Snapshot() setup.Status
}

// Deps are the collaborators behind the tools. Versions may be nil.
type Deps struct {
	Settings SettingsSource
	Verifier ConnectionTester
	Versions VersionSource
	Setup    SetupRunner
}

// Server serves the tools over stdio.
type Server struct {
	deps Deps
	mcp  *server.MCPServer

	// runCtx outlives tool calls; setup runs are bound to it.
	runCtx context.Context
}

// New creates the server and registers its tools.
func New(deps Deps, version string) (*Server, error) {
	if deps.Settings == nil || deps.Verifier == nil || deps.Setup == nil {
		return nil, errors.New("mcpserver: settings, verifier and setup are required")
	}
	s := &Server{
		deps:   deps,
		runCtx: context.Background(),
	}
	s.mcp = server.NewMCPServer(
		"jfrogext",
		version,
		server.WithToolCapabilities(false),
	)
	s.mcp.AddTools(s.tools()...)
	return s, nil
}

// ServeStdio blocks serving requests on stdin/stdout until ctx is done or
// the input is closed.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.runCtx = context.WithoutCancel(ctx)
	logging.Info(subsystem, "Serving MCP tools on stdio")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
