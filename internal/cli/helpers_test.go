package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/ariel-frischer/tagnotes/internal/testutil"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// Note: tests in this package cannot run in parallel because they use the
// global rootCmd, its flag variables and the working directory.

// newTestRepo creates a repository that is also the working directory for
// the duration of the test.
func newTestRepo(t *testing.T) *testutil.GitRepo {
	t.Helper()
	r := testutil.NewGitRepo(t)
	isolateEnv(t)
	chdir(t, r.Dir)
	return r
}

// releaseHistory creates v1 and v2 with a repeated feature commit in v2
// and one unreleased fix.
func releaseHistory(t *testing.T) (*testutil.GitRepo, map[string]plumbing.Hash) {
	r := newTestRepo(t)
	h := map[string]plumbing.Hash{}
	h["init"] = r.Commit("feat: initial import")
	r.Tag("v1", h["init"])
	h["x1"] = r.Commit("feat: add export")
	h["x2"] = r.Commit("feat: add export")
	h["chore"] = r.Commit("chore: bump deps")
	h["fix"] = r.Commit("fix(cli): exit code")
	r.Tag("v2", h["fix"])
	h["next"] = r.Commit("fix: unreleased work")
	return r, h
}

// isolateEnv keeps user config and TAGNOTES_ variables out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TAGNOTES_LINKS__REPOSITORY", "https://github.com/acme/widget")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// runCommand executes rootCmd with args and returns stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
