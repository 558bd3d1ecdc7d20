package cmd

import (
	"jfrogext/internal/app"

	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	var useTUI bool
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Create a new JFrog environment",
		Long: `Creates a new JFrog environment for free. The JFrog CLI opens a browser
where you complete the registration; the environment is then prepared and
its connection details are saved.

By default the progress is printed line by line. Use --tui to follow it in
the interactive interface instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.NewConfig(!useTUI, rootDebug, rootConfigPath)
			cfg.SetupFirst = true
			return runApplication(cmd, cfg)
		},
	}
	setupCmd.Flags().BoolVar(&useTUI, "tui", false, "Follow the setup in the interactive interface")
	return setupCmd
}
