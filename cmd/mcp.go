package cmd

import (
	"jfrogext/internal/app"
	"jfrogext/internal/mcpserver"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol integration",
	}
	mcpCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the settings tools over stdio",
		Long: `Starts an MCP server on stdin/stdout so AI assistants can read the
settings, test the connection and create a JFrog environment.

Logs are written to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(app.NewConfig(true, rootDebug, rootConfigPath))
			if err != nil {
				return err
			}
			services := application.Services()
			srv, err := mcpserver.New(mcpserver.Deps{
				Settings: services.Store,
				Verifier: services.Verifier,
				Versions: services.Versions,
				Setup:    services.Tracker,
			}, rootCmd.Version)
			if err != nil {
				return err
			}
			return srv.ServeStdio(commandContext(cmd))
		},
	})
	return mcpCmd
}
