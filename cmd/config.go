package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/jxrprism/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the settings commands run with: the built-in defaults
overlaid with the file given by --config. The output is a valid
configuration file.

Examples:
  jxrprism config > jxrprism.yaml
  jxrprism config --config jxrprism.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Dump(configFromContext(cmd.Context()))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
