package cmd

import (
	"jfrogext/internal/app"

	"github.com/spf13/cobra"
)

func newTestConnectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Test the saved connection to the JFrog environment",
		Long: `Sends a ping to the saved JFrog environment using the saved credentials
and reports whether the environment could be reached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(app.NewConfig(true, rootDebug, rootConfigPath))
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			ctrl, feedback, err := app.NewCLIController(ctx, application.Services().SettingsDeps(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			ctrl.TestConnection(ctx)
			return feedback.Err()
		},
	}
}
