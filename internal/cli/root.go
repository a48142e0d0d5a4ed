// Package cli implements the tagnotes command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/git"
	"github.com/ariel-frischer/tagnotes/internal/notify"
	"github.com/ariel-frischer/tagnotes/internal/release"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs for help output.
const (
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

var (
	configPath    string
	debugMode     bool
	verboseMode   bool
	repoFlag      string
	backendFlag   string
	changelogFile string
	changelogDir  string
)

var rootCmd = &cobra.Command{
	Use:   "tagnotes",
	Short: "Generate release changelogs from git history",
	Long: `tagnotes builds the changelog of a release from the conventional commits
between the release tag and the tag before it.

Commits whose type is excluded (release, submodule, ci, chore, doc...) are
left out, adjacent commits with the same subject are compacted into one
entry, and the result is written twice:
  1. A per-release document (.changelog/<tag>.md)
  2. A new top section of the cumulative changelog (CHANGELOG.md)

Generating the same tag again replaces its section instead of adding a
second one.`,
	Example: `  # Generate the changelog for a release
  tagnotes generate v1.4.0

  # Preview without writing anything
  tagnotes preview v1.4.0

  # Show which commits a release covers
  tagnotes range v1.4.0

  # Check CHANGELOG.md for duplicated releases
  tagnotes check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebug(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default .tagnotes/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Print debug logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Print the resolved range and entry counts")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Directory inside the git repository (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "History backend: go-git or cli")
	rootCmd.PersistentFlags().StringVar(&changelogFile, "changelog-file", "", "Cumulative changelog path")
	rootCmd.PersistentFlags().StringVar(&changelogDir, "changelog-dir", "", "Directory of per-release documents")
}

// configureDebug installs or clears the debug loggers of every package.
func configureDebug(w io.Writer) {
	var logger func(format string, args ...any)
	if debugMode {
		logger = func(format string, args ...any) {
			fmt.Fprintf(w, "[debug] "+format+"\n", args...)
		}
	}
	git.SetDebugLogger(logger)
	release.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
	notify.SetDebugLogger(logger)
}

// Execute runs the root command and returns the process exit code.
// Errors are printed to stderr here; cobra's own printing is silenced.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	if _, ok := err.(*ExitError); !ok {
		clierrors.Report(os.Stderr, err, clierrors.Argument)
	}
	return ExitCode(err)
}
