package cmd

import (
	"errors"
	"fmt"

	"jfrogext/internal/app"
	"jfrogext/internal/config"
	"jfrogext/internal/settings"

	"github.com/spf13/cobra"
)

// settingsFlags holds the values of the `settings set` flags.
type settingsFlags struct {
	url         string
	authType    string
	username    string
	password    string
	accessToken string
	policy      string
	project     string
	watches     string
}

var connectionFlagNames = []string{"url", "auth-type", "username", "password", "access-token"}

func newSettingsCmd() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the extension settings",
		Long: `Show or change the JFrog connection details and the scanning policy.

Available commands:
  show - Print the saved settings (secrets are never printed)
  set  - Change settings without opening the interactive form`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, app.NewConfig(true, rootDebug, rootConfigPath))
		},
	}

	var flags settingsFlags
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the saved settings",
		Long: `Change the saved settings with the same rules as the settings form.

Passing any connection flag (--url, --auth-type, --username, --password,
--access-token) edits the connection; the saved connection must then be
complete: a URL plus either username and password or an access token.

--project implies --policy=project and --watches implies --policy=watches.
Fields that do not belong to the chosen policy are cleared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, flags)
		},
	}
	bindSettingsFlags(setCmd, &flags)

	settingsCmd.AddCommand(showCmd, setCmd)
	return settingsCmd
}

func bindSettingsFlags(cmd *cobra.Command, flags *settingsFlags) {
	cmd.Flags().StringVar(&flags.url, "url", "", "JFrog environment URL, e.g. https://acme.jfrog.io")
	cmd.Flags().StringVar(&flags.authType, "auth-type", "", "Authentication type: basic or accessToken")
	cmd.Flags().StringVar(&flags.username, "username", "", "Username for basic authentication")
	cmd.Flags().StringVar(&flags.password, "password", "", "Password for basic authentication")
	cmd.Flags().StringVar(&flags.accessToken, "access-token", "", "Access token")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "Scanning policy: allVulnerabilities, project or watches")
	cmd.Flags().StringVar(&flags.project, "project", "", "JFrog project key for the project policy")
	cmd.Flags().StringVar(&flags.watches, "watches", "", "Comma separated watch names for the watches policy")
}

func runSettingsSet(cmd *cobra.Command, flags settingsFlags) error {
	application, err := newApplication(app.NewConfig(true, rootDebug, rootConfigPath))
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	ctrl, feedback, err := app.NewCLIController(ctx, application.Services().SettingsDeps(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if err := applySettingsFlags(cmd, ctrl, flags); err != nil {
		return err
	}

	if !ctrl.Save(ctx) {
		if err := feedback.Err(); err != nil {
			return err
		}
		if ctrl.State().EditingConnection {
			return errors.New("the connection details are incomplete")
		}
		return errors.New("nothing to change")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings saved (policy: %s)\n", ctrl.State().SavedPolicy)
	return nil
}

// applySettingsFlags feeds the changed flags into the controller.
func applySettingsFlags(cmd *cobra.Command, ctrl *settings.Controller, flags settingsFlags) error {
	changed := cmd.Flags().Changed

	for _, name := range connectionFlagNames {
		if changed(name) {
			ctrl.SetEditingConnection(true)
			break
		}
	}
	if changed("auth-type") {
		auth, err := config.ParseAuthType(flags.authType)
		if err != nil {
			return err
		}
		ctrl.SetAuthType(auth)
	}
	if changed("url") {
		ctrl.SetURL(flags.url)
	}
	if changed("username") {
		ctrl.SetUsername(flags.username)
	}
	if changed("password") {
		ctrl.SetPassword(flags.password)
	}
	if changed("access-token") {
		if !changed("auth-type") {
			ctrl.SetAuthType(config.AuthAccessToken)
		}
		ctrl.SetAccessToken(flags.accessToken)
	}

	switch {
	case changed("policy"):
		policy, err := config.ParsePolicy(flags.policy)
		if err != nil {
			return err
		}
		ctrl.SetPolicy(policy)
	case changed("watches"):
		ctrl.SetPolicy(config.PolicyWatches)
	case changed("project"):
		ctrl.SetPolicy(config.PolicyProject)
	}
	if changed("project") {
		ctrl.SetProject(flags.project)
	}
	if changed("watches") {
		ctrl.SetWatches(flags.watches)
	}
	return nil
}
