package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/tagnotes/internal/build"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for tagnotes",
	Example: `  # Show version info
  tagnotes version

  # Plain output (for scripts)
  tagnotes version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionPlain {
			fmt.Fprintln(out, build.Summary())
			return
		}

		const width = 8
		version := build.Version
		if build.IsDevBuild() {
			version += " (development build)"
		}
		output.PrintKeyValue(out, width, "version", version)
		output.PrintKeyValue(out, width, "commit", truncateCommit(build.Commit))
		output.PrintKeyValue(out, width, "built", build.BuildDate)
		output.PrintKeyValue(out, width, "go", runtime.Version())
		output.PrintKeyValue(out, width, "platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
		output.PrintKeyValue(out, width, "source", build.SourceURL)
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
