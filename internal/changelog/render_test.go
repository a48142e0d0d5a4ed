package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLinks = NewLinkTemplates("https://github.com/acme/widget")

func TestNewLinkTemplates(t *testing.T) {
	t.Parallel()

	links := NewLinkTemplates("https://github.com/acme/widget/")
	assert.Equal(t, "https://github.com/acme/widget/commit/abc", links.CommitURL("abc"))
	assert.Equal(t, "https://github.com/acme/widget/compare/a..b", links.CompareURL("a", "b"))
	assert.Equal(t, "https://github.com/acme/widget/releases/tag/v1", links.ReleaseURL("v1"))
}

func TestRender_GroupedAndSingle(t *testing.T) {
	t.Parallel()

	groups := []GroupedLogEntry{
		{Message: "feat: a", Hashes: []string{"h2", "h1"}},
		{Message: "fix: b", Hashes: []string{"h3"}, BoundaryHash: "h1"},
	}

	got := Render(groups, "v1", testLinks)
	want := []string{
		"- fix: b ([`h3`](https://github.com/acme/widget/commit/h3))",
		"- feat: a ([`h2..h1`](https://github.com/acme/widget/compare/h2..v1))",
		"",
		"    <details><summary><code>h2..h1</code></summary>",
		"",
		"    - [`h2`](https://github.com/acme/widget/commit/h2)",
		"    - [`h1`](https://github.com/acme/widget/commit/h1)",
		"",
		"    </details>",
		"",
	}
	assert.Equal(t, want, got)
}

func TestRender_CompareEnd(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		boundary    string
		previousTag string
		wantURL     string
	}{
		"boundary hash wins": {
			boundary:    "b0",
			previousTag: "v1",
			wantURL:     "https://github.com/acme/widget/compare/h2..b0",
		},
		"previous tag fallback": {
			previousTag: "v1",
			wantURL:     "https://github.com/acme/widget/compare/h2..v1",
		},
		"HEAD fallback": {
			wantURL: "https://github.com/acme/widget/compare/h2..HEAD",
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			groups := []GroupedLogEntry{{Message: "feat: a", Hashes: []string{"h2", "h1"}, BoundaryHash: tt.boundary}}
			got := Render(groups, tt.previousTag, testLinks)
			require.NotEmpty(t, got)
			assert.Contains(t, got[0], "("+tt.wantURL+")")
			assert.Contains(t, got[0], "[`h2..h1`]")
		})
	}
}

func TestRender_NewestGroupFirst(t *testing.T) {
	t.Parallel()

	groups := []GroupedLogEntry{
		{Message: "feat: first", Hashes: []string{"h1"}},
		{Message: "feat: second", Hashes: []string{"h2"}, BoundaryHash: "h1"},
		{Message: "feat: third", Hashes: []string{"h3"}, BoundaryHash: "h2"},
	}

	got := Render(groups, "", testLinks)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "- feat: third"))
	assert.True(t, strings.HasPrefix(got[1], "- feat: second"))
	assert.True(t, strings.HasPrefix(got[2], "- feat: first"))
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Render(nil, "v1", testLinks))
	assert.Empty(t, Render([]GroupedLogEntry{{Message: "feat: x"}}, "v1", testLinks))
}

func TestRender_FromGroupedCommits(t *testing.T) {
	t.Parallel()

	lines := []string{"h3 fix: b", "h2 feat: a", "h1 feat: a", "h0 chore: setup"}
	groups := Group(ParseCommitLines(lines), DefaultExcludedPrefixes)
	got := Render(groups, "", testLinks)

	require.NotEmpty(t, got)
	assert.Equal(t, "- fix: b ([`h3`](https://github.com/acme/widget/commit/h3))", got[0])
	assert.Equal(t, "- feat: a ([`h2..h1`](https://github.com/acme/widget/compare/h2..HEAD))", got[1])
}

func TestJoinLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", JoinLines(nil))
	assert.Equal(t, "a\n\nb\n", JoinLines([]string{"a", "", "b"}))
}
