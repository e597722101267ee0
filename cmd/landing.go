package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/jxrprism/core/landing"
)

var (
	flagProjectName string
	flagLandingSkip bool
)

var landingCmd = &cobra.Command{
	Use:   "landing <project-dir>",
	Short: "Write coverage and source-xref landing pages for a multi-module build",
	Long: `Landing reads the Maven project in a directory, finds which of its modules
generated a JaCoCo coverage report or a JXR cross-reference, and writes
coverage.html and source-xref.html linking to them into the project's site
(target/staging when present, otherwise target/site). Projects that do not
aggregate modules are skipped.

Examples:
  jxrprism landing .
  jxrprism landing . --project_name "Example Platform"`,
	Args: cobra.ExactArgs(1),
	RunE: runLanding,
}

func init() {
	rootCmd.AddCommand(landingCmd)

	landingCmd.Flags().StringVar(&flagProjectName, "project_name", "", "Name shown on the pages (default: the project name)")
	landingCmd.Flags().BoolVar(&flagLandingSkip, "skip", false, "Do nothing")
}

func runLanding(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	if flagLandingSkip {
		logger.Info("Skipping landing page generation")
		return nil
	}

	project, err := landing.LoadProject(args[0])
	if err != nil {
		return err
	}
	g := &landing.Generator{ProjectName: flagProjectName, Logger: logger}
	_, err = g.Generate(project)
	return err
}
