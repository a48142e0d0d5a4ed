package changelog

import (
	"fmt"
	"strings"
)

// Render produces the markdown lines for a release, newest group first.
//
// A single commit renders as one bullet linking the commit. A group of
// repeated commits renders as one bullet with a compare link followed by a
// collapsible list of every commit in the group. The compare range ends at
// the group's boundary hash, falling back to previousTag and then HEAD.
func Render(groupsOldestFirst []GroupedLogEntry, previousTag string, links LinkTemplates) []string {
	var lines []string

	for i := len(groupsOldestFirst) - 1; i >= 0; i-- {
		g := groupsOldestFirst[i]
		if len(g.Hashes) == 0 {
			continue
		}
		if !g.IsGrouped() {
			lines = append(lines, renderSingle(g, links))
			continue
		}
		lines = append(lines, renderGroup(g, previousTag, links)...)
	}

	return lines
}

// renderSingle formats a one-commit entry.
func renderSingle(g GroupedLogEntry, links LinkTemplates) string {
	hash := g.Hashes[0]
	return fmt.Sprintf("- %s ([`%s`](%s))", g.Message, hash, links.CommitURL(hash))
}

// renderGroup formats a compacted entry with its collapsible commit list.
func renderGroup(g GroupedLogEntry, previousTag string, links LinkTemplates) []string {
	pre := g.Hashes[0]
	oldest := g.Hashes[len(g.Hashes)-1]
	post := compareEnd(g.BoundaryHash, previousTag)
	label := pre + ".." + oldest

	lines := []string{
		fmt.Sprintf("- %s ([`%s`](%s))", g.Message, label, links.CompareURL(pre, post)),
		"",
		fmt.Sprintf("    <details><summary><code>%s</code></summary>", label),
		"",
	}
	for _, hash := range g.Hashes {
		lines = append(lines, fmt.Sprintf("    - [`%s`](%s)", hash, links.CommitURL(hash)))
	}
	return append(lines, "", "    </details>", "")
}

func compareEnd(boundary, previousTag string) string {
	if boundary != "" {
		return boundary
	}
	if previousTag != "" {
		return previousTag
	}
	return HeadRef
}

// JoinLines joins lines into newline-terminated text.
func JoinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
