// Package changelog turns a release's commit history into markdown.
//
// This package implements:
//   - Tag range resolution (which tag precedes the one being released)
//   - Commit subject qualification and adjacent-duplicate grouping
//   - Markdown rendering of grouped entries with compare links
//   - Section splicing into the cumulative CHANGELOG.md
//   - The per-release document written to the changelog directory
//
// Everything here is pure over strings and slices except SafeWrite, which
// performs the atomic file replacement used for both outputs.
package changelog
