package changelog

import "strings"

// HeadRef is the reference used as the upper bound of a range when the
// target tag does not exist yet, and as the compare fallback when a group
// has neither a boundary hash nor a previous tag.
const HeadRef = "HEAD"

// DefaultExcludedPrefixes are the commit type prefixes left out of a
// changelog. Matching is a prefix test on the type token, so "docs" and
// "documentation" are excluded by "doc".
var DefaultExcludedPrefixes = []string{"release", "submodule", "ci", "chore", "doc"}

// RawCommitLine is one non-merge commit as reported by the history reader.
type RawCommitLine struct {
	Hash    string `yaml:"hash" json:"hash"`
	Subject string `yaml:"subject" json:"subject"`
}

// GroupedLogEntry is a run of adjacent commits sharing the same subject.
// Hashes holds the newest discovered hash first and the oldest last.
// BoundaryHash is empty when the group was the first one created.
type GroupedLogEntry struct {
	Message      string   `yaml:"message" json:"message"`
	Hashes       []string `yaml:"hashes" json:"hashes"`
	BoundaryHash string   `yaml:"boundary_hash,omitempty" json:"boundary_hash,omitempty"`
}

// IsGrouped reports whether the entry compacts more than one commit.
func (e GroupedLogEntry) IsGrouped() bool {
	return len(e.Hashes) > 1
}

// Type returns the conventional commit type of the entry message
// (the token before the optional scope and colon).
func (e GroupedLogEntry) Type() string {
	m := commitPattern.FindStringSubmatch(e.Message)
	if m == nil {
		return ""
	}
	return m[1]
}

// LinkTemplates holds the base URLs used to build links in rendered output.
// Each template is joined with "/" and the hash, range or tag.
type LinkTemplates struct {
	Commit  string `yaml:"commit" json:"commit"`
	Compare string `yaml:"compare" json:"compare"`
	Release string `yaml:"release" json:"release"`
}

// NewLinkTemplates derives GitHub-style link templates from a repository
// web URL such as https://github.com/owner/repo.
func NewLinkTemplates(repository string) LinkTemplates {
	base := strings.TrimSuffix(repository, "/")
	return LinkTemplates{
		Commit:  base + "/commit",
		Compare: base + "/compare",
		Release: base + "/releases/tag",
	}
}

// CommitURL returns the link to a single commit.
func (l LinkTemplates) CommitURL(hash string) string {
	return joinURL(l.Commit, hash)
}

// CompareURL returns the link comparing two references.
func (l LinkTemplates) CompareURL(from, to string) string {
	return joinURL(l.Compare, from+".."+to)
}

// ReleaseURL returns the link to the release page of a tag.
func (l LinkTemplates) ReleaseURL(tag string) string {
	return joinURL(l.Release, tag)
}

func joinURL(base, tail string) string {
	return strings.TrimSuffix(base, "/") + "/" + tail
}
