package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jfrogext/internal/config"
	"jfrogext/internal/platform"
	"jfrogext/internal/setup"
	"jfrogext/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("settings_get",
				mcp.WithDescription("Get the JFrog connection details and scanning policy. Secrets are never returned."),
				mcp.WithBoolean("include_versions",
					mcp.Description("Also report the Xray and JFrog CLI versions"),
					mcp.DefaultBool(true),
				),
			),
			Handler: s.handleSettingsGet,
		},
		{
			Tool: mcp.NewTool("settings_test_connection",
				mcp.WithDescription("Test the saved connection to the JFrog environment"),
			),
			Handler: s.handleTestConnection,
		},
		{
			Tool: mcp.NewTool("setup_env",
				mcp.WithDescription("Start creating a new JFrog environment. The user completes the registration in a browser."),
			),
			Handler: s.handleSetupEnv,
		},
		{
			Tool: mcp.NewTool("setup_status",
				mcp.WithDescription("Get the stage of the current environment setup"),
			),
			Handler: s.handleSetupStatus,
		},
	}
}

type settingsView struct {
	URL      string             `json:"url,omitempty"`
	AuthType string             `json:"authType"`
	Username string             `json:"username,omitempty"`
	Policy   string             `json:"policy"`
	Project  string             `json:"project,omitempty"`
	Watches  []string           `json:"watches,omitempty"`
	Versions *platform.Versions `json:"versions,omitempty"`
}

func (s *Server) handleSettingsGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.deps.Settings.Load(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load settings: %v", err)), nil
	}
	cfg = config.Redacted(cfg)

	auth := string(config.AuthBasic)
	if cfg.UsesAccessToken() {
		auth = string(config.AuthAccessToken)
	}
	policy := config.DerivePolicy(cfg)
	view := settingsView{
		URL:      cfg.URL,
		AuthType: auth,
		Username: cfg.Username,
		Policy:   policy.String(),
	}
	switch policy {
	case config.PolicyProject:
		view.Project = cfg.Project
	case config.PolicyWatches:
		view.Watches = config.WatchList(cfg)
	}

	if includeVersions(req) && s.deps.Versions != nil {
		v, err := s.deps.Versions.Versions(ctx)
		if err != nil {
			logging.Warn(subsystem, "Versions are incomplete: %v", err)
		}
		view.Versions = &v
	}

	jsonData, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format settings: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func includeVersions(req mcp.CallToolRequest) bool {
	args, ok := req.Params.Arguments.(map[string]interface{})
	if !ok {
		return true
	}
	v, ok := args["include_versions"].(bool)
	if !ok {
		return true
	}
	return v
}

func (s *Server) handleTestConnection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.deps.Verifier.TestConnection(ctx, nil)
	if err != nil {
		return mcp.NewToolResultError("Could not connect to JFrog Environment: " + err.Error()), nil
	}
	if strings.TrimSpace(resp) != "OK" {
		return mcp.NewToolResultError("Could not connect to JFrog Environment: " + resp), nil
	}
	return mcp.NewToolResultText("Successfully connected to JFrog Environment"), nil
}

func (s *Server) handleSetupEnv(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := s.deps.Setup.Start(s.runCtx)
	logging.Info(subsystem, "Started setup run %s", runID)
	return statusResult(s.deps.Setup.Snapshot())
}

func (s *Server) handleSetupStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return statusResult(s.deps.Setup.Snapshot())
}

type statusView struct {
	RunID    string `json:"runId,omitempty"`
	Stage    string `json:"stage"`
	Exited   bool   `json:"exited"`
	ExitCode int    `json:"exitCode"`
	Error    string `json:"error,omitempty"`
}

func statusResult(st setup.Status) (*mcp.CallToolResult, error) {
	view := statusView{
		RunID:    st.RunID,
		Stage:    st.Stage.String(),
		Exited:   st.Exited,
		ExitCode: st.ExitCode,
	}
	if st.Err != nil {
		view.Error = st.Err.Error()
	}
	jsonData, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
