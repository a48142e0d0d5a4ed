package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := map[string]struct {
		content    string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr []string
	}{
		"clean changelog": {
			content:    "# v2\n\n- feat: b\n\n# v1\n\n- feat: a\n",
			wantCode:   ExitSuccess,
			wantStdout: "2 release sections, no problems",
		},
		"heading in code block is not a section": {
			content:    "# v2\n\n```\n# v2\n```\n",
			wantCode:   ExitSuccess,
			wantStdout: "1 release sections",
		},
		"duplicate section": {
			content:    "# v2\n\n- feat: b\n\n# v1\n\n# v2\n",
			wantCode:   ExitCheckFailed,
			wantStderr: []string{"1 problem(s)", "line 7: v2: duplicate section (first defined on line 1)"},
		},
		"heading without tag prefix": {
			content:    "# Changelog\n\n# v1\n",
			wantCode:   ExitCheckFailed,
			wantStderr: []string{"heading does not start with tag prefix \"v\""},
		},
		"explicit file argument": {
			content:    "# v1\n",
			args:       []string{"NOTES.md"},
			wantCode:   ExitSuccess,
			wantStdout: "NOTES.md",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			isolateEnv(t)
			chdir(t, dir)

			file := "CHANGELOG.md"
			if len(tt.args) > 0 {
				file = tt.args[0]
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(tt.content), 0o644))

			stdout, stderr, err := runCommand(t, append([]string{"check"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			if tt.wantStdout != "" {
				assert.Contains(t, stdout, tt.wantStdout)
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestCheck_MissingFile(t *testing.T) {
	isolateEnv(t)
	chdir(t, t.TempDir())

	_, _, err := runCommand(t, "check")
	require.Error(t, err)
	assert.Equal(t, ExitOutput, ExitCode(err))
	assert.Contains(t, err.Error(), "cannot read CHANGELOG.md")
}

func TestWatch_Errors(t *testing.T) {
	tests := map[string]struct {
		args     []string
		inRepo   bool
		wantCode int
	}{
		"missing tag":      {args: []string{"watch"}, inRepo: true, wantCode: ExitInvalidArguments},
		"not a repository": {args: []string{"watch", "v2"}, wantCode: ExitRepository},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.inRepo {
				releaseHistory(t)
			} else {
				isolateEnv(t)
				chdir(t, t.TempDir())
			}

			_, _, err := runCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
		})
	}
}

func TestWatch_Flags(t *testing.T) {
	for _, name := range []string{"write", "debounce", "notify", "notify-min"} {
		assert.NotNil(t, watchCmd.Flags().Lookup(name), name)
	}
}
