//go:build e2e

package e2e

import (
	"testing"

	"github.com/ariel-frischer/tagnotes/internal/cli"
	"github.com/ariel-frischer/tagnotes/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestE2E_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		setup      func(t *testing.T, env *testutil.E2EEnv)
		command    []string
		wantCode   int
		wantStderr string
	}{
		"success": {
			setup:    func(t *testing.T, env *testutil.E2EEnv) { setupRelease(t, env) },
			command:  []string{"generate", "v2"},
			wantCode: cli.ExitSuccess,
		},
		"missing tag argument": {
			setup:      func(t *testing.T, env *testutil.E2EEnv) { setupRelease(t, env) },
			command:    []string{"generate"},
			wantCode:   cli.ExitInvalidArguments,
			wantStderr: "target tag is required",
		},
		"unknown command": {
			command:  []string{"publish"},
			wantCode: cli.ExitInvalidArguments,
		},
		"invalid configuration": {
			setup: func(t *testing.T, env *testutil.E2EEnv) {
				setupRelease(t, env)
				env.Setenv("TAGNOTES_HASH_LENGTH", "1")
			},
			command:    []string{"generate", "v2"},
			wantCode:   cli.ExitConfig,
			wantStderr: "invalid configuration",
		},
		"not a repository": {
			command:    []string{"generate", "v2"},
			wantCode:   cli.ExitRepository,
			wantStderr: "not a git repository",
		},
		"check finds duplicate sections": {
			setup: func(t *testing.T, env *testutil.E2EEnv) {
				env.WriteFile("CHANGELOG.md", "# v2\n\n# v1\n\n# v2\n")
			},
			command:    []string{"check"},
			wantCode:   cli.ExitCheckFailed,
			wantStderr: "duplicate section",
		},
		"check on missing file": {
			command:  []string{"check"},
			wantCode: cli.ExitOutput,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			if tt.setup != nil {
				tt.setup(t, env)
			}

			result := env.Run(tt.command...)
			assert.Equal(t, tt.wantCode, result.ExitCode, "stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
			if tt.wantStderr != "" {
				assert.Contains(t, result.Stderr, tt.wantStderr)
			}
		})
	}
}
