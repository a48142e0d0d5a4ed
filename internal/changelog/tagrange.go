package changelog

import "strings"

// TagRange describes the commit range covered by a release.
type TagRange struct {
	// Target is the tag being released.
	Target string `yaml:"target" json:"target"`
	// Previous is the release preceding Target, empty when there is none.
	Previous string `yaml:"previous,omitempty" json:"previous,omitempty"`
	// TargetFound is true when Target already exists in history.
	TargetFound bool `yaml:"target_found" json:"target_found"`
}

// Upper returns the upper bound of the range: the tag itself when it
// exists, HEAD otherwise.
func (r TagRange) Upper() string {
	if r.TargetFound {
		return r.Target
	}
	return HeadRef
}

// Spec returns the range in git revision syntax ("v1.0.0..v1.1.0").
// Without a previous tag it is just the upper bound, meaning full history.
func (r TagRange) Spec() string {
	if r.Previous == "" {
		return r.Upper()
	}
	return r.Previous + ".." + r.Upper()
}

// FilterTags keeps the tags starting with prefix, preserving order.
// An empty prefix keeps everything.
func FilterTags(tags []string, prefix string) []string {
	filtered := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || !strings.HasPrefix(tag, prefix) {
			continue
		}
		filtered = append(filtered, tag)
	}
	return filtered
}

// ResolveRange finds the tag preceding target in a newest-first tag list.
//
// When target is present, the previous tag is the first one after it. When
// it is absent (a release not tagged yet), the previous tag is the newest
// tag in the list so the range still covers the unreleased commits. A target
// that is the oldest tag has no previous tag.
func ResolveRange(tagsNewestFirst []string, target string) TagRange {
	r := TagRange{Target: target}
	firstTag := ""

	for _, tag := range tagsNewestFirst {
		if tag == target {
			r.TargetFound = true
			continue
		}
		if r.TargetFound {
			r.Previous = tag
			break
		}
		if firstTag == "" {
			firstTag = tag
		}
	}

	if !r.TargetFound {
		r.Previous = firstTag
	}

	logDebug("[changelog] ResolveRange: target=%s found=%v previous=%q", target, r.TargetFound, r.Previous)
	return r
}
