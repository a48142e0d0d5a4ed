package changelog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StandaloneOptions controls the fixed preamble of a per-release document.
// Empty fields leave their part of the preamble out.
type StandaloneOptions struct {
	// CoreVersion is the version of the core library this release targets.
	CoreVersion string
	// CoreReleaseURL is the release page base URL of the core library.
	CoreReleaseURL string
	// Warning is shown in a GitHub "[!warning]" alert block.
	Warning string
	// IssuesURL and PullsURL are linked from the contribution notice.
	IssuesURL string
	PullsURL  string
}

// StandalonePath returns the per-release document path for tag.
func StandalonePath(dir, tag string) string {
	return filepath.Join(dir, tag+".md")
}

// RenderStandalone composes the per-release document: the preamble
// followed by the rendered entry lines.
func RenderStandalone(tag string, body []string, opts StandaloneOptions) string {
	var lines []string

	if opts.CoreVersion != "" {
		lines = append(lines, "> Core version: "+coreVersionRef(opts), "")
	}

	if opts.Warning != "" {
		lines = append(lines, "> [!warning]")
		for _, w := range strings.Split(strings.TrimSpace(opts.Warning), "\n") {
			lines = append(lines, "> "+strings.TrimSpace(w))
		}
		lines = append(lines, "")
	}

	if notice := contributionNotice(opts); notice != "" {
		lines = append(lines, notice, "")
	}

	lines = append(lines, body...)
	logDebug("[changelog] RenderStandalone: %s with %d body lines", tag, len(body))
	return JoinLines(lines)
}

func coreVersionRef(opts StandaloneOptions) string {
	version := "v" + strings.TrimPrefix(opts.CoreVersion, "v")
	if opts.CoreReleaseURL == "" {
		return fmt.Sprintf("**%s**", version)
	}
	return fmt.Sprintf("[**%s**](%s)", version, joinURL(opts.CoreReleaseURL, version))
}

func contributionNotice(opts StandaloneOptions) string {
	switch {
	case opts.IssuesURL != "" && opts.PullsURL != "":
		return fmt.Sprintf("We welcome your [feedback](%s) or [contributions](%s). Thank you for your support!",
			opts.IssuesURL, opts.PullsURL)
	case opts.IssuesURL != "":
		return fmt.Sprintf("We welcome your [feedback](%s). Thank you for your support!", opts.IssuesURL)
	case opts.PullsURL != "":
		return fmt.Sprintf("We welcome your [contributions](%s). Thank you for your support!", opts.PullsURL)
	}
	return ""
}
