// Package cmd implements the CLI commands for jxrprism using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/jxrprism/core/config"
)

// Global flags.
var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "jxrprism",
	Short: "jxrprism: re-highlight JXR source pages with Prism-style markup",
	Long: `jxrprism replaces the static highlighting of JXR cross-reference source
pages with token markup in the style of Prism.js, keeping a clickable
line-number column, themes generated Maven sites and writes their
module landing pages.

Usage:
  jxrprism convert <file|dir|url> [flags]
  jxrprism inject <build-dir> [flags]
  jxrprism landing <project-dir> [flags]
  jxrprism config`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if flagVerbose {
			level = log.DebugLevel
		}
		logger := newLogger(os.Stderr, level)

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagConfig != "" {
			logger.Debug("Loaded configuration", "path", flagConfig)
		}

		ctx := withLogger(cmd.Context(), logger)
		cmd.SetContext(withConfig(ctx, cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
