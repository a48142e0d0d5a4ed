package cli

import (
	"os"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check the cumulative changelog for duplicated releases",
	Long: `Check that every release heading appears once in the cumulative changelog
and that each heading starts with the configured tag prefix.

Headings are found by parsing the markdown, so "# v1.0.0" lines inside
code blocks are ignored. Exits with code 1 when problems are found.`,
	Example: `  # Check the configured changelog file
  tagnotes check

  # Check another file
  tagnotes check docs/CHANGELOG.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args)
	},
}

func init() {
	checkCmd.GroupID = GroupRelease
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.ChangelogFile
	if len(args) == 1 {
		path = args[0]
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return clierrors.ReadFailed(path, err)
	}

	issues, err := changelog.Check(source, cfg.TagPrefix)
	if err != nil {
		return clierrors.ReadFailed(path, err)
	}

	if len(issues) == 0 {
		sections, _ := changelog.Sections(source)
		output.PrintSuccess(cmd.OutOrStdout(), "%s: %d release sections, no problems", path, len(sections))
		return nil
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.String())
	}
	clierrors.FprintError(cmd.ErrOrStderr(), clierrors.DuplicateSections(path, lines))
	return NewExitError(ExitCheckFailed)
}
