package changelog

import (
	"fmt"
	"strings"
)

// SectionHeading returns the top-level heading line for a tag.
func SectionHeading(tag string) string {
	return "# " + tag
}

// SectionHeader returns the heading and release-notes blurb that open a
// tag's section in the cumulative document.
func SectionHeader(tag string, links LinkTemplates) []string {
	return []string{
		SectionHeading(tag),
		"",
		fmt.Sprintf("> Release & Pull Notes: [%s](%s)", tag, links.ReleaseURL(tag)),
		"",
	}
}

// Merge splices a new section for tag at the top of an existing cumulative
// document. Any existing section headed by the same tag is dropped; every
// other line is kept in its original order. Merging the same content twice
// yields the same document.
func Merge(existing, tag string, sectionLines []string, links LinkTemplates) string {
	out := SectionHeader(tag, links)
	out = append(out, sectionLines...)
	out = append(out, "")
	rest := filterSection(splitLines(existing), tag)
	out = append(out, rest...)

	doc := JoinLines(out)
	if len(rest) > 0 && !strings.HasSuffix(existing, "\n") {
		doc = strings.TrimSuffix(doc, "\n")
	}
	return doc
}

// filterSection removes the section headed by tag. Scanning enters skip
// mode on the tag's heading and leaves it on the next top-level heading,
// which is kept. Lines inside fenced code blocks are never headings.
func filterSection(lines []string, tag string) []string {
	heading := SectionHeading(tag)
	kept := make([]string, 0, len(lines))
	skip := false
	fence := ""

	for _, line := range lines {
		code := fence != ""
		fence = trackFence(fence, line)
		code = code || fence != ""

		switch {
		case !code && strings.TrimSpace(line) == heading:
			skip = true
		case !code && skip && isTopLevelHeading(line):
			skip = false
			kept = append(kept, line)
		case !skip:
			kept = append(kept, line)
		}
	}

	return kept
}

// isTopLevelHeading reports whether line is a level-one ATX heading.
func isTopLevelHeading(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ")
}

// trackFence returns the fence marker still open after line, given the
// marker open before it ("" outside a fenced code block). A closing fence
// uses the same character and is at least as long as the opening one.
func trackFence(open, line string) string {
	marker := fenceMarker(line)
	if open == "" {
		return marker
	}
	if marker != "" && marker[0] == open[0] && len(marker) >= len(open) && strings.TrimSpace(line) == marker {
		return ""
	}
	return open
}

// fenceMarker returns the run of three or more backticks or tildes that
// starts line (after at most three spaces of indentation), or "".
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

// splitLines splits text into lines without producing a trailing empty
// line for a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
