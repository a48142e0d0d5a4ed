// Package release drives changelog generation for one release tag: it reads
// the tag list and commit log through a git.Reader, groups and renders the
// qualifying commits, and writes the per-release document and the
// cumulative changelog.
//
// All history queries finish before anything is written, and each file is
// replaced atomically, so a failed run leaves both documents untouched.
package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	"github.com/ariel-frischer/tagnotes/internal/git"
)

// ErrEmptyTag is returned when the target tag is blank.
var ErrEmptyTag = errors.New("target tag must not be empty")

// QueryError reports a failed history query.
type QueryError struct {
	// Query describes what was being read, e.g. "list tags".
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// FileError reports a failed read or write of an output document.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Options configures a Generator.
type Options struct {
	// TagPrefix filters the tag list before range resolution.
	TagPrefix string
	// ExcludedPrefixes are the commit type prefixes left out.
	ExcludedPrefixes []string
	// ChangelogFile is the cumulative document.
	ChangelogFile string
	// ChangelogDir holds the per-release documents.
	ChangelogDir string
	Links        changelog.LinkTemplates
	Standalone   changelog.StandaloneOptions
}

// Progress receives status updates around history queries.
// *progress.Spinner satisfies it.
type Progress interface {
	Start(message string)
	Succeed(message string)
	Fail(message string)
}

// Generator produces the changelog documents of one release.
type Generator struct {
	reader   git.Reader
	opts     Options
	progress Progress
}

// NewGenerator creates a Generator reading history from reader.
func NewGenerator(reader git.Reader, opts Options) *Generator {
	return &Generator{reader: reader, opts: opts}
}

// WithProgress reports query progress to p. A nil p disables reporting.
func (g *Generator) WithProgress(p Progress) *Generator {
	g.progress = p
	return g
}

// Plan is the in-memory result of the history queries for one tag.
type Plan struct {
	Range changelog.TagRange `yaml:"range" json:"range"`
	// RangeSpec is the queried range in git revision syntax.
	RangeSpec string `yaml:"range_spec" json:"range_spec"`
	// Tags are the release tags considered, newest first.
	Tags []string `yaml:"tags" json:"tags"`
	// Commits are all parsed non-merge commits in the range, newest first.
	Commits []changelog.RawCommitLine `yaml:"commits" json:"commits"`
	// Groups are the qualifying commits, grouped, oldest first.
	Groups []changelog.GroupedLogEntry `yaml:"groups" json:"groups"`
	// Body is the rendered entry list.
	Body []string `yaml:"-" json:"-"`
	// Section is the full section spliced into the cumulative document.
	Section []string `yaml:"-" json:"-"`
}

// Markdown returns the section as it will appear in the cumulative document.
func (p *Plan) Markdown() string {
	return changelog.JoinLines(p.Section)
}

// Result describes the documents written by Write.
type Result struct {
	Plan           *Plan
	StandalonePath string
	ChangelogPath  string
}

// Prepare runs both history queries and renders the release section.
// Nothing is written.
func (g *Generator) Prepare(ctx context.Context, target string) (*Plan, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyTag
	}

	allTags, err := g.query(ctx, "list tags", func() ([]string, error) {
		return g.reader.ListTags(ctx)
	})
	if err != nil {
		return nil, err
	}

	tags := changelog.FilterTags(allTags, g.opts.TagPrefix)
	r := changelog.ResolveRange(tags, target)
	logDebug("[release] %d of %d tags match prefix %q; range %s (target found: %v)",
		len(tags), len(allTags), g.opts.TagPrefix, r.Spec(), r.TargetFound)

	lines, err := g.query(ctx, "read commit log "+r.Spec(), func() ([]string, error) {
		return g.reader.LogRange(ctx, r.Previous, r.Upper())
	})
	if err != nil {
		return nil, err
	}

	commits := changelog.ParseCommitLines(lines)
	groups := changelog.Group(commits, g.opts.ExcludedPrefixes)
	body := changelog.Render(groups, r.Previous, g.opts.Links)
	logDebug("[release] %d commits, %d groups, %d rendered lines", len(commits), len(groups), len(body))

	section := changelog.SectionHeader(target, g.opts.Links)
	section = append(section, body...)

	return &Plan{
		Range:     r,
		RangeSpec: r.Spec(),
		Tags:      tags,
		Commits:   commits,
		Groups:    groups,
		Body:      body,
		Section:   section,
	}, nil
}

// query runs fn with progress reporting and wraps failures in a QueryError.
func (g *Generator) query(ctx context.Context, what string, fn func() ([]string, error)) ([]string, error) {
	if g.progress != nil {
		g.progress.Start(what + "...")
	}

	lines, err := fn()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if g.progress != nil {
			g.progress.Fail(what + " failed")
		}
		return nil, &QueryError{Query: what, Err: err}
	}

	if g.progress != nil {
		g.progress.Succeed(fmt.Sprintf("%s: %d entries", what, len(lines)))
	}
	return lines, nil
}

// Write composes both documents for plan in memory, then replaces the
// per-release document and the cumulative changelog.
func (g *Generator) Write(plan *Plan) (*Result, error) {
	tag := plan.Range.Target
	standalonePath := changelog.StandalonePath(g.opts.ChangelogDir, tag)
	changelogPath := g.opts.ChangelogFile

	existing, err := changelog.ReadDocument(changelogPath)
	if err != nil {
		return nil, &FileError{Op: "read", Path: changelogPath, Err: err}
	}

	standalone := changelog.RenderStandalone(tag, plan.Body, g.opts.Standalone)
	merged := changelog.Merge(existing, tag, plan.Body, g.opts.Links)

	if err := writeDocument(standalonePath, standalone); err != nil {
		return nil, err
	}
	if err := writeDocument(changelogPath, merged); err != nil {
		return nil, err
	}

	logDebug("[release] wrote %s and %s", standalonePath, changelogPath)
	return &Result{Plan: plan, StandalonePath: standalonePath, ChangelogPath: changelogPath}, nil
}

// Run prepares and writes the documents for target.
func (g *Generator) Run(ctx context.Context, target string) (*Result, error) {
	plan, err := g.Prepare(ctx, target)
	if err != nil {
		return nil, err
	}
	return g.Write(plan)
}

func writeDocument(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{Op: "write", Path: path, Err: err}
		}
	}
	if err := changelog.SafeWrite(path, []byte(content), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
