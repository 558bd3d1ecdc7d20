package cmd

import (
	"context"
	"fmt"
	"os"

	"jfrogext/internal/app"

	"github.com/spf13/cobra"
)

var (
	// rootDebug enables verbose logging across the application.
	rootDebug bool

	// rootConfigPath loads configuration from a single directory instead of
	// the layered user and project locations.
	rootConfigPath string

	// rootNoTUI prints the settings instead of opening the interactive form.
	rootNoTUI bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jfrogext",
	Short: "Manage the JFrog environment connection and scanning policy",
	Long: `jfrogext manages the connection to a JFrog environment and the policy
used to filter scan results.

Without a subcommand it opens an interactive settings form where you can
review or edit the connection details, test the connection, pick the
scanning policy or create a new JFrog environment for free.

Configuration:
  jfrogext loads configuration from .jfrogext/config.yaml in the user config
  directory and the current directory. Secrets are kept in the OS keyring.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. failed connections)
	SilenceUsage: true,
	RunE:         runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(rootNoTUI, rootDebug, rootConfigPath)
	return runApplication(cmd, cfg)
}

// newApplication loads the configuration and wires the services.
func newApplication(cfg *app.Config) (*app.Application, error) {
	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func runApplication(cmd *cobra.Command, cfg *app.Config) error {
	application, err := newApplication(cfg)
	if err != nil {
		return err
	}
	application.SetOutput(cmd.OutOrStdout())
	return application.Run(commandContext(cmd))
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "jfrogext version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newTestConnectionCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newMCPCmd())

	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config-path", "", "Load configuration from this directory only")
	rootCmd.Flags().BoolVar(&rootNoTUI, "no-tui", false, "Print the current settings instead of opening the settings form")
}
