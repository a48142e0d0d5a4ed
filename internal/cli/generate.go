package cli

import (
	"fmt"

	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/ariel-frischer/tagnotes/internal/release"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <tag>",
	Short: "Write the changelog of a release",
	Long: `Write the changelog of a release tag.

The commits between the previous release tag and <tag> are read, filtered
and grouped. When <tag> does not exist yet the range ends at HEAD, so the
changelog can be written before tagging.

Two files are written:
  - <changelog_dir>/<tag>.md, replaced entirely
  - <changelog_file>, with the release section spliced in at the top

Any existing section for <tag> in the cumulative changelog is replaced, so
running generate twice gives the same result. Nothing is written when the
history cannot be read.`,
	Example: `  # Generate the changelog for v1.4.0
  tagnotes generate v1.4.0

  # Write to custom locations
  tagnotes generate v1.4.0 --changelog-file docs/CHANGELOG.md --changelog-dir docs/releases

  # Use the git executable instead of go-git
  tagnotes generate v1.4.0 --backend cli`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	generateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tag, err := targetTag(cmd, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	result, err := sess.generator(cmd).Run(cmd.Context(), tag)
	if err != nil {
		return toCLIError(err)
	}

	out := cmd.OutOrStdout()
	if verboseMode {
		printPlanSummary(cmd, result.Plan)
	}
	output.PrintWritten(out, "Wrote", result.StandalonePath)
	output.PrintWritten(out, "Updated", result.ChangelogPath)
	if len(result.Plan.Groups) == 0 {
		output.PrintWarning(cmd.ErrOrStderr(), "no qualifying commits in %s", result.Plan.RangeSpec)
	}
	return nil
}

// summaryWidth aligns the key column of range summaries.
const summaryWidth = 9

// printPlanSummary prints the resolved range and entry counts.
func printPlanSummary(cmd *cobra.Command, plan *release.Plan) {
	out := cmd.OutOrStdout()
	previous := plan.Range.Previous
	if previous == "" {
		previous = "(none)"
	}

	output.PrintKeyValue(out, summaryWidth, "target", plan.Range.Target)
	output.PrintKeyValue(out, summaryWidth, "tagged", fmt.Sprintf("%v", plan.Range.TargetFound))
	output.PrintKeyValue(out, summaryWidth, "previous", previous)
	output.PrintKeyValue(out, summaryWidth, "range", plan.RangeSpec)
	output.PrintKeyValue(out, summaryWidth, "commits", fmt.Sprintf("%d", len(plan.Commits)))
	output.PrintKeyValue(out, summaryWidth, "entries", fmt.Sprintf("%d", len(plan.Groups)))
}
