package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluqqy/padbook/internal/cli"
	"github.com/pluqqy/padbook/pkg/files"
	"github.com/pluqqy/padbook/pkg/models"
)

// NewConfigCommand groups the settings file helpers. configPath points at the
// root --config flag value.
func NewConfigCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
	}

	cmd.AddCommand(
		newConfigPathCommand(configPath),
		newConfigShowCommand(configPath),
		newConfigInitCommand(configPath),
	)

	return cmd
}

// resolveConfigPath returns the --config value or the default location
func resolveConfigPath(configPath *string) (string, error) {
	if configPath != nil && *configPath != "" {
		return *configPath, nil
	}
	return files.SettingsPath()
}

func newConfigPathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the settings file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigShowCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings Padbook would start with: the defaults merged with the
settings file, if one exists.`,
		Example: `  # Show settings as YAML
  padbook config show

  # Show settings from another file as JSON
  padbook --config ./padbook.yaml config show -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			explicit := ""
			if configPath != nil {
				explicit = *configPath
			}
			settings, err := files.ReadSettings(explicit)
			if err != nil {
				return err
			}

			return cli.OutputResults(cmd.OutOrStdout(), output, settings)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(cli.FormatYAML), "Output format (yaml, json)")

	return cmd
}

func newConfigInitCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(configPath)
			if err != nil {
				return err
			}
			if err := cli.ValidateDirectoryPath(path); err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil {
				if force {
					cli.PrintWarning(cmd.ErrOrStderr(), "Overwriting %s", path)
				} else if ok, err := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("%s already exists. Overwrite?", path), false); err != nil {
					return err
				} else if !ok {
					cli.PrintInfo(cmd.OutOrStdout(), "Kept existing settings")
					return nil
				}
			}

			if err := files.WriteSettings(path, models.DefaultSettings()); err != nil {
				return err
			}

			cli.PrintSuccess(cmd.OutOrStdout(), "Wrote default settings to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")

	return cmd
}
