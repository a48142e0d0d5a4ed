package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// categoryLabels are the short names printed after "tagnotes:".
var categoryLabels = map[ErrorCategory]string{
	Argument:      "usage",
	Configuration: "config",
	Repository:    "git",
	Output:        "file",
}

// categoryColors highlight the label; failures the user caused are yellow,
// failures of the repository or the filesystem red.
var categoryColors = map[ErrorCategory]*color.Color{
	Argument:      color.New(color.FgYellow, color.Bold),
	Configuration: color.New(color.FgYellow, color.Bold),
	Repository:    color.New(color.FgRed, color.Bold),
	Output:        color.New(color.FgRed, color.Bold),
}

var (
	usageColor  = color.New(color.FgCyan)
	detailColor = color.New(color.Faint)
	hintColor   = color.New(color.FgGreen)
)

// FormatError renders err as one headline plus indented lines:
//
//	tagnotes: file: CHANGELOG.md has 1 problem(s)
//	  line 7: v2: duplicate section (first defined on line 1)
//	  hint: Regenerate the affected release with: tagnotes generate <tag>
//
// Colors follow color.NoColor.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	label, ok := categoryLabels[err.Category]
	if !ok {
		label = "error"
	}
	style, ok := categoryColors[err.Category]
	if !ok {
		style = color.New(color.FgRed, color.Bold)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "tagnotes: %s: %s\n", style.Sprint(label), err.Message)
	if err.Usage != "" {
		fmt.Fprintf(&sb, "  %s %s\n", usageColor.Sprint("usage:"), err.Usage)
	}
	for _, detail := range err.Details {
		fmt.Fprintf(&sb, "  %s\n", detailColor.Sprint(detail))
	}
	for _, step := range err.Remediation {
		fmt.Fprintf(&sb, "  %s %s\n", hintColor.Sprint("hint:"), step)
	}
	return sb.String()
}

// FprintError prints a formatted CLIError to w.
func FprintError(w io.Writer, err *CLIError) {
	fmt.Fprint(w, FormatError(err))
}

// Report prints any error to w. Plain errors are shown with the given
// fallback category.
func Report(w io.Writer, err error, fallback ErrorCategory) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: fallback, Message: err.Error()}
	}
	FprintError(w, cliErr)
}
