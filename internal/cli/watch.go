package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/git"
	"github.com/ariel-frischer/tagnotes/internal/notify"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/ariel-frischer/tagnotes/internal/release"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	watchWrite     bool
	watchDebounce  time.Duration
	watchNotify    bool
	watchNotifyMin time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <tag>",
	Short: "Re-render a release whenever the repository refs change",
	Long: `Watch the repository and print the changelog section of <tag> again after
every commit, checkout, or tag change. Press Ctrl-C to stop.

With --write the documents are regenerated on disk instead of printed.
With --notify a desktop notification is shown after every regeneration
(never in CI or without a terminal).`,
	Example: `  # Follow the next release while working on it
  tagnotes watch v1.5.0

  # Keep CHANGELOG.md up to date
  tagnotes watch v1.5.0 --write

  # Only notify when regenerating takes a while
  tagnotes watch v1.5.0 --write --notify --notify-min 2s`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args)
	},
}

func init() {
	watchCmd.GroupID = GroupRelease
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchWrite, "write", false, "Write the documents on every change")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", release.DefaultDebounce, "Delay before re-rendering after a change")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "Show a desktop notification after every regeneration")
	watchCmd.Flags().DurationVar(&watchNotifyMin, "notify-min", 0, "Only notify about regenerations that take at least this long")
}

func runWatch(cmd *cobra.Command, args []string) error {
	tag, err := targetTag(cmd, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	gitDir, err := git.GetGitDir(sess.cfg.RepoPath)
	if err != nil {
		return clierrors.NotARepository(sess.cfg.RepoPath)
	}

	gen := sess.generator(cmd)
	out := cmd.OutOrStdout()
	dim := color.New(color.Faint).SprintFunc()

	notifyCfg := notify.DefaultConfig()
	notifyCfg.Enabled = watchNotify
	notifyCfg.MinDuration = watchNotifyMin
	notifier := notify.NewHandler(notifyCfg)

	watcher := release.NewWatcher(gitDir, func(ctx context.Context) error {
		start := time.Now()
		stamp := start.Format("15:04:05")
		rule := strings.Repeat("-", max(10, output.GetTerminalWidth()-len(stamp)-1))
		fmt.Fprintln(out, dim(rule+" "+stamp))
		if watchWrite {
			result, err := gen.Run(ctx, tag)
			if err != nil {
				return toCLIError(err)
			}
			output.PrintWritten(out, "Updated", result.ChangelogPath)
		} else if err := previewRelease(ctx, gen, tag, cmd); err != nil {
			return err
		}
		notifier.OnRegenerated(tag, watchWrite, time.Since(start))
		return nil
	}).WithDebounce(watchDebounce).OnError(func(err error) {
		clierrors.Report(cmd.ErrOrStderr(), err, clierrors.Repository)
		notifier.OnError(tag, err)
	})

	output.PrintSuccess(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)", gitDir)
	if err := watcher.Run(cmd.Context()); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Repository, "cannot watch "+gitDir)
	}
	return nil
}
