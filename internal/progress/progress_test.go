package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})
	s.Start("reading history")
	assert.Empty(t, buf.String(), "no animation without a terminal")

	s.Succeed("read 12 commits")
	s.Fail("query failed")
	assert.Equal(t, "[OK] read 12 commits\n[FAIL] query failed\n", buf.String())
}

func TestSpinner_Quiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})
	s.SetQuiet(true)
	s.Start("x")
	s.Succeed("done")
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestDetectTerminalCapabilities_ASCII(t *testing.T) {
	t.Setenv("TAGNOTES_ASCII", "1")
	t.Setenv("NO_COLOR", "1")

	caps := DetectTerminalCapabilities()
	assert.False(t, caps.SupportsUnicode)
	assert.False(t, caps.SupportsColor)
}
