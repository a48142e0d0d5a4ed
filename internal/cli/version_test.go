package cli

import (
	"testing"

	"github.com/ariel-frischer/tagnotes/internal/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"pretty": {
			args: []string{"version"},
			want: []string{"version", build.Version, "(development build)", "source", build.SourceURL},
		},
		"plain": {
			args: []string{"version", "--plain"},
			want: []string{build.Summary() + "\n"},
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			stdout, _, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}
