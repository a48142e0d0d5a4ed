package cli

import (
	"fmt"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	"github.com/ariel-frischer/tagnotes/internal/git"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rangeCommits bool

var rangeCmd = &cobra.Command{
	Use:   "range <tag>",
	Short: "Show the commit range a release covers",
	Long: `Show how the range of a release is resolved: whether <tag> exists, the
release tag before it, the revision range queried and how many commits and
changelog entries it yields.

With --commits every commit in the range is listed; excluded ones are
marked with "-".`,
	Example: `  tagnotes range v1.4.0
  tagnotes range v1.4.0 --commits`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRange(cmd, args)
	},
}

func init() {
	rangeCmd.GroupID = GroupRelease
	rootCmd.AddCommand(rangeCmd)

	rangeCmd.Flags().BoolVar(&rangeCommits, "commits", false, "List the commits in the range")
}

func runRange(cmd *cobra.Command, args []string) error {
	tag, err := targetTag(cmd, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	plan, err := sess.generator(cmd).Prepare(cmd.Context(), tag)
	if err != nil {
		return toCLIError(err)
	}

	if root, err := git.GetRepositoryRoot(sess.cfg.RepoPath); err == nil {
		output.PrintKeyValue(cmd.OutOrStdout(), summaryWidth, "root", root)
	}
	printPlanSummary(cmd, plan)

	if rangeCommits && len(plan.Commits) > 0 {
		out := cmd.OutOrStdout()
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintln(out)
		for _, c := range plan.Commits {
			if changelog.Qualifies(c.Subject, sess.cfg.ExcludedPrefixes) {
				fmt.Fprintf(out, "+ %s %s\n", c.Hash, c.Subject)
				continue
			}
			fmt.Fprintln(out, dim(fmt.Sprintf("- %s %s", c.Hash, c.Subject)))
		}
	}
	return nil
}
