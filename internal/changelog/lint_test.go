package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	t.Parallel()

	doc := "# v3\n\n- a\n\n## Notes\n\n# v2\n\n```\n# not-a-section\n```\n\n# v1\n"
	got, err := Sections([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []Section{
		{Tag: "v3", Line: 1},
		{Tag: "v2", Line: 7},
		{Tag: "v1", Line: 13},
	}, got)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc        string
		prefix     string
		wantIssues int
		wantTags   []string
	}{
		"clean document": {
			doc:    "# v2\n\n- a\n\n# v1\n\n- b\n",
			prefix: "v",
		},
		"duplicate tag": {
			doc:        "# v2\n\n- a\n\n# v1\n\n# v2\n",
			prefix:     "v",
			wantIssues: 1,
			wantTags:   []string{"v2"},
		},
		"heading without prefix": {
			doc:        "# Changelog\n\n# v1\n",
			prefix:     "v",
			wantIssues: 1,
			wantTags:   []string{"Changelog"},
		},
		"empty prefix accepts any heading": {
			doc:    "# Changelog\n\n# v1\n",
			prefix: "",
		},
		"empty document": {
			doc: "",
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			issues, err := Check([]byte(tt.doc), tt.prefix)
			require.NoError(t, err)
			require.Len(t, issues, tt.wantIssues)
			for i, tag := range tt.wantTags {
				assert.Equal(t, tag, issues[i].Tag)
			}
		})
	}
}

func TestCheck_DuplicateReportsFirstLine(t *testing.T) {
	t.Parallel()

	issues, err := Check([]byte("# v2\n\n# v1\n\n# v2\n"), "v")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 5, issues[0].Line)
	assert.Contains(t, issues[0].Message, "line 1")
	assert.Equal(t, "line 5: v2: duplicate section (first defined on line 1)", issues[0].String())
}

func TestMerge_ResultPassesCheck(t *testing.T) {
	t.Parallel()

	doc := "# v2\n\n- old\n\n# v1\n\n- first\n"
	merged := Merge(doc, "v2", []string{"- new"}, testLinks)
	merged = Merge(merged, "v3", []string{"- three"}, testLinks)

	issues, err := Check([]byte(merged), "v")
	require.NoError(t, err)
	assert.Empty(t, issues)
}
