package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

Each value is reported with where it came from: default, file, environment
or flag. Passwords in connection strings are masked.

Settings file: appsettings.<Environment>.yml in APP_CONFIG_PATH, or --config

Example:
  projectctl configuration show
  projectctl configuration show --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(cmd, cmd.OutOrStdout(), output); err != nil {
			exitWithError("show configuration", err)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(cmd *cobra.Command, out io.Writer, output string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if output == "json" {
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, jsonOutput)
		return err
	}

	_, err = fmt.Fprint(out, cfg.FormatText())
	return err
}
