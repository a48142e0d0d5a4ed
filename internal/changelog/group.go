package changelog

import (
	"regexp"
	"strings"
)

// commitPattern matches "type(scope): description". The type token is
// captured so excluded prefixes can be tested against it.
var commitPattern = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\(.+\))?: *.+$`)

// ParseCommitLine splits a "hash subject" log line. Lines without a
// subject are reported as not ok.
func ParseCommitLine(line string) (RawCommitLine, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return RawCommitLine{}, false
	}

	hash, subject, found := strings.Cut(line, " ")
	if !found {
		return RawCommitLine{}, false
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return RawCommitLine{}, false
	}

	return RawCommitLine{Hash: hash, Subject: subject}, true
}

// ParseCommitLines parses log output lines in order, dropping malformed ones.
func ParseCommitLines(lines []string) []RawCommitLine {
	commits := make([]RawCommitLine, 0, len(lines))
	for _, line := range lines {
		if c, ok := ParseCommitLine(line); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

// Qualifies reports whether a commit subject belongs in the changelog.
func Qualifies(subject string, excludedPrefixes []string) bool {
	subject = strings.TrimSpace(subject)
	if strings.HasPrefix(subject, "release") {
		return false
	}

	m := commitPattern.FindStringSubmatch(subject)
	if m == nil {
		return false
	}

	commitType := m[1]
	for _, prefix := range excludedPrefixes {
		if prefix != "" && strings.HasPrefix(commitType, prefix) {
			return false
		}
	}
	return true
}

// Group filters newest-first commits and merges adjacent commits that share
// a subject. The result is ordered oldest group first.
//
// Only adjacent repeats are merged: the same subject separated by another
// commit produces two groups.
func Group(rawNewestFirst []RawCommitLine, excludedPrefixes []string) []GroupedLogEntry {
	groups := make([]GroupedLogEntry, 0)

	for i := len(rawNewestFirst) - 1; i >= 0; i-- {
		c := rawNewestFirst[i]
		if !Qualifies(c.Subject, excludedPrefixes) {
			continue
		}
		message := strings.TrimSpace(c.Subject)

		if len(groups) == 0 {
			groups = append(groups, GroupedLogEntry{Message: message, Hashes: []string{c.Hash}})
			continue
		}

		last := len(groups) - 1
		if groups[last].Message == message {
			groups[last].Hashes = append([]string{c.Hash}, groups[last].Hashes...)
			continue
		}

		prev := groups[last].Hashes
		groups = append(groups, GroupedLogEntry{
			Message:      message,
			Hashes:       []string{c.Hash},
			BoundaryHash: prev[len(prev)-1],
		})
	}

	logDebug("[changelog] Group: %d commits -> %d groups", len(rawNewestFirst), len(groups))
	return groups
}
