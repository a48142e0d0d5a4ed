package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitReader reads history with go-git, without a git executable.
type GoGitReader struct {
	// Path is any directory inside the repository ("" = working directory).
	Path string
	// HashLength abbreviates commit hashes (0 = full hash).
	HashLength int
}

// NewGoGitReader creates a go-git backed Reader.
func NewGoGitReader(path string, hashLength int) *GoGitReader {
	return &GoGitReader{Path: path, HashLength: hashLength}
}

type tagTime struct {
	name string
	when time.Time
}

// ListTags returns all tags ordered by the committer date of the commit they
// point to, newest first. Ties are ordered by name, descending.
func (r *GoGitReader) ListTags(ctx context.Context) ([]string, error) {
	repo, err := openRepo(r.Path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []tagTime
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		when, err := tagCommitTime(repo, ref.Hash())
		if err != nil {
			logDebug("[git] skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		tags = append(tags, tagTime{name: ref.Name().Short(), when: when})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if !tags[i].when.Equal(tags[j].when) {
			return tags[i].when.After(tags[j].when)
		}
		return tags[i].name > tags[j].name
	})

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}

	logDebug("[git] ListTags: found %d tags", len(names))
	return names, nil
}

// tagCommitTime peels annotated tags and returns the committer time of the
// tagged commit.
func tagCommitTime(repo *git.Repository, hash plumbing.Hash) (time.Time, error) {
	tag, err := repo.TagObject(hash)
	switch {
	case err == nil:
		commit, err := tag.Commit()
		if err != nil {
			return time.Time{}, fmt.Errorf("peeling tag: %w", err)
		}
		return commit.Committer.When, nil
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return time.Time{}, err
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return time.Time{}, err
	}
	return commit.Committer.When, nil
}

// LogRange returns non-merge commits in from..to, newest first.
func (r *GoGitReader) LogRange(ctx context.Context, from, to string) ([]string, error) {
	repo, err := openRepo(r.Path)
	if err != nil {
		return nil, err
	}

	toHash, err := repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", to, err)
	}

	exclude := make(map[plumbing.Hash]bool)
	if from != "" {
		if err := collectAncestors(ctx, repo, from, exclude); err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: *toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if exclude[c.Hash] || c.NumParents() > 1 {
			return nil
		}
		lines = append(lines, abbreviate(c.Hash.String(), r.HashLength)+" "+subjectLine(c.Message))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking log from %s: %w", to, err)
	}

	logDebug("[git] LogRange(%q, %q): %d commits", from, to, len(lines))
	return lines, nil
}

// collectAncestors adds every commit reachable from rev to seen.
func collectAncestors(ctx context.Context, repo *git.Repository, rev string, seen map[plumbing.Hash]bool) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", rev, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: *hash})
	if err != nil {
		return fmt.Errorf("reading log from %s: %w", rev, err)
	}

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking log from %s: %w", rev, err)
	}
	return nil
}
