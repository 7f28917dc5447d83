package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/orochaa/go-clack/prompts"
	"github.com/orochaa/go-clack/third_party/picocolors"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Creates, shows, imports and migrates the semrel configuration file.

Without --config, the configuration is searched for in the current directory,
its parents, ~/.config/semrel/ and the home directory.`,
	Args: cobra.NoArgs,
}

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInitE,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShowE,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPathE,
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Convert a semantic-release configuration",
	Long:  `Converts a .releaserc (JSON or YAML) or the "release" key of a package.json into a semrel configuration.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigImportE,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the configuration file to the current version",
	Args:  cobra.NoArgs,
	RunE:  runConfigMigrateE,
}

var configFlags = configOptions{}

type configOptions struct {
	Force  bool
	Output string
}

func configAddFlags() {
	configInitCmd.Flags().BoolVarP(&configFlags.Force, "force", "F", false, "Overwrite an existing configuration file")
	configImportCmd.Flags().StringVarP(&configFlags.Output, "output", "o", "", "Write the converted configuration to a file instead of stdout")
	configImportCmd.Flags().BoolVarP(&configFlags.Force, "force", "F", false, "Overwrite an existing output file")
}

func init() {
	configAddFlags()

	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd, configImportCmd, configMigrateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInitE(cmd *cobra.Command, args []string) error {
	dir := getWd()
	if len(args) == 1 {
		dir = args[0]
	}

	path := rootFlags.ConfigPath
	if path == "" {
		path = config.GetDefaultPath(dir)
	}

	if err := confirmOverwrite(cmd, path); err != nil {
		return err
	}

	if err := config.Save(config.NewDefault(), path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigShowE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), cfg)
}

func runConfigPathE(cmd *cobra.Command, args []string) error {
	if rootFlags.ConfigPath != "" {
		fmt.Fprintln(cmd.OutOrStdout(), rootFlags.ConfigPath)
		return nil
	}

	path, ok := config.GetPath()
	if !ok {
		return errors.New("no configuration file found, the defaults are used")
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigImportE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Import(args[0])
	if err != nil {
		return err
	}

	if configFlags.Output == "" {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}

	if err := confirmOverwrite(cmd, configFlags.Output); err != nil {
		return err
	}

	return config.Save(cfg, configFlags.Output)
}

func runConfigMigrateE(cmd *cobra.Command, args []string) error {
	path := rootFlags.ConfigPath
	if path == "" {
		found, ok := config.GetPath()
		if !ok {
			return errors.New("no configuration file found")
		}
		path = found
	}

	_, migrated, err := config.Migrate(path)
	if err != nil {
		return err
	}

	if migrated {
		fmt.Fprintf(cmd.OutOrStdout(), "%s migrated\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", path)
	}
	return nil
}

// confirmOverwrite returns nil when path does not exist or may be
// overwritten, asking when running interactively without --force.
func confirmOverwrite(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) || configFlags.Force {
		return nil
	}

	if !interactive() {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	injectIntoCommandContextWithKey(cmd, ctxKeyClackPromptStarted{}, true)

	confirmed, err := prompts.Confirm(prompts.ConfirmParams{
		Message: fmt.Sprintf("Overwrite %s?", picocolors.Cyan(path)),
	})
	if err != nil {
		return fmt.Errorf("failed to get confirmation: %w", err)
	}
	if !confirmed {
		return errors.New("cancelled")
	}

	return nil
}
