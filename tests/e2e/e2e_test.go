//go:build e2e

// Package e2e provides end-to-end tests for the tagnotes binary.
package e2e

import (
	"strings"
	"testing"

	"github.com/ariel-frischer/tagnotes/internal/cli"
	"github.com/ariel-frischer/tagnotes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRelease creates v1 and v2 in the working directory of env and points
// links at a fixed repository.
func setupRelease(t *testing.T, env *testutil.E2EEnv) *testutil.GitRepo {
	t.Helper()
	repo := env.InitGitRepo()
	repo.Tag("v1", repo.Commit("feat: initial import"))
	repo.Commit("chore: bump deps")
	repo.Tag("v2", repo.Commit("fix: handle empty ranges"))
	env.Setenv("TAGNOTES_LINKS__REPOSITORY", "https://github.com/acme/widget")
	return repo
}

func TestE2E_GenerateWritesDocuments(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	setupRelease(t, env)

	result := env.Run("generate", "v2")
	require.Equal(t, cli.ExitSuccess, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Contains(t, result.Stdout, "Wrote")
	assert.Contains(t, result.Stdout, "Updated")

	changelog := env.ReadFile("CHANGELOG.md")
	assert.True(t, strings.HasPrefix(changelog, "# v2\n"))
	assert.Contains(t, changelog, "- fix: handle empty ranges")
	assert.NotContains(t, changelog, "chore")

	standalone := env.ReadFile(".changelog/v2.md")
	assert.Contains(t, standalone, "- fix: handle empty ranges")
}

func TestE2E_GenerateIsIdempotent(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	setupRelease(t, env)

	require.Equal(t, cli.ExitSuccess, env.Run("generate", "v1").ExitCode)
	require.Equal(t, cli.ExitSuccess, env.Run("generate", "v2").ExitCode)
	first := env.ReadFile("CHANGELOG.md")

	require.Equal(t, cli.ExitSuccess, env.Run("generate", "v2").ExitCode)
	second := env.ReadFile("CHANGELOG.md")

	assert.Equal(t, first, second)
	assert.Less(t, strings.Index(second, "# v2\n"), strings.Index(second, "# v1\n"))
}

func TestE2E_PreviewWritesNothing(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	setupRelease(t, env)

	result := env.Run("preview", "v2", "--format", "json")
	require.Equal(t, cli.ExitSuccess, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Contains(t, result.Stdout, `"range_spec": "v1..v2"`)

	check := env.Run("check")
	assert.Equal(t, cli.ExitOutput, check.ExitCode, "CHANGELOG.md must not exist after preview")
}

func TestE2E_Version(t *testing.T) {
	env := testutil.NewE2EEnv(t)

	result := env.Run("version", "--plain")
	require.Equal(t, cli.ExitSuccess, result.ExitCode)
	assert.Contains(t, result.Stdout, "tagnotes")
}
