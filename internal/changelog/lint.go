package changelog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is a top-level heading found in a cumulative document.
type Section struct {
	Tag  string
	Line int
}

// Issue is a structural problem found by Check.
type Issue struct {
	Line    int
	Tag     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Tag, i.Message)
}

// Sections lists the level-one headings of a markdown document in order.
// Headings inside code blocks are not sections.
func Sections(source []byte) ([]Section, error) {
	var sections []Section
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level != 1 {
			return ast.WalkSkipChildren, nil
		}

		var content bytes.Buffer
		lines := heading.Lines()
		start := -1
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start < 0 {
				start = seg.Start
			}
			content.Write(seg.Value(source))
		}

		sections = append(sections, Section{
			Tag:  strings.TrimSpace(content.String()),
			Line: lineAt(source, start),
		})
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return sections, nil
}

// Check reports tags heading more than one section and sections whose
// heading does not start with tagPrefix.
func Check(source []byte, tagPrefix string) ([]Issue, error) {
	sections, err := Sections(source)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var issues []Issue
	firstSeen := make(map[string]int)
	for _, s := range sections {
		if line, dup := firstSeen[s.Tag]; dup {
			issues = append(issues, Issue{
				Line:    s.Line,
				Tag:     s.Tag,
				Message: fmt.Sprintf("duplicate section (first defined on line %d)", line),
			})
			continue
		}
		firstSeen[s.Tag] = s.Line

		if tagPrefix != "" && !strings.HasPrefix(s.Tag, tagPrefix) {
			issues = append(issues, Issue{
				Line:    s.Line,
				Tag:     s.Tag,
				Message: fmt.Sprintf("heading does not start with tag prefix %q", tagPrefix),
			})
		}
	}

	return issues, nil
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(source []byte, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
