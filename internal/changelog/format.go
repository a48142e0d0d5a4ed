package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TypeStyle defines the color and icon for a commit type.
type TypeStyle struct {
	Color *color.Color
	Icon  string
}

// typeStyles maps conventional commit types to their terminal styling.
var typeStyles = map[string]TypeStyle{
	"feat":     {Color: color.New(color.FgGreen), Icon: "✓"},
	"fix":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"perf":     {Color: color.New(color.FgMagenta), Icon: "»"},
	"refactor": {Color: color.New(color.FgBlue), Icon: "~"},
	"test":     {Color: color.New(color.FgCyan), Icon: "?"},
	"revert":   {Color: color.New(color.FgRed), Icon: "✗"},
}

var defaultTypeStyle = TypeStyle{Color: color.New(color.Reset), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a release preview with terminal styling, newest
// entry first. Grouped entries show how many commits they compact.
func FormatTerminal(r TagRange, groupsOldestFirst []GroupedLogEntry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeRangeHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(groupsOldestFirst) == 0 {
		_, err := fmt.Fprintln(w, "  (no qualifying commits)")
		return err
	}

	for i := len(groupsOldestFirst) - 1; i >= 0; i-- {
		if err := writeEntry(groupsOldestFirst[i], w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeRangeHeader writes the "tag (range)" header line.
func writeRangeHeader(r TagRange, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%s)", r.Target, r.Spec())

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeEntry writes a single grouped entry with optional wrapping.
func writeEntry(g GroupedLogEntry, w io.Writer, opts FormatOptions, width int) error {
	text := g.Message
	if g.IsGrouped() {
		text = fmt.Sprintf("%s (%d commits)", text, len(g.Hashes))
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "  - %s\n", text)
		return err
	}

	style, ok := typeStyles[g.Type()]
	if !ok {
		style = defaultTypeStyle
	}

	prefix := "  " + style.Icon + " "
	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(wrapped), dim(g.Hashes[0]))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
