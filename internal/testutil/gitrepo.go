// Package testutil provides test utilities and helpers for tagnotes tests.
package testutil

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo builds small repositories with deterministic commit times.
// Every commit or annotated tag advances the clock by one minute, so tag
// order by commit date follows creation order.
type GitRepo struct {
	t     *testing.T
	Dir   string
	Repo  *git.Repository
	clock time.Time
}

// NewGitRepo initializes an empty repository in a new temp directory.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	return InitGitRepo(t, t.TempDir())
}

// InitGitRepo initializes an empty repository in dir.
func InitGitRepo(t *testing.T, dir string) *GitRepo {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{
		t:     t,
		Dir:   dir,
		Repo:  repo,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *GitRepo) signature() *object.Signature {
	r.clock = r.clock.Add(time.Minute)
	return &object.Signature{Name: "Test", Email: "test@test.com", When: r.clock}
}

// Commit creates an empty commit on HEAD, or with the given parents.
func (r *GitRepo) Commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	sig := r.signature()
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag.
func (r *GitRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag object pointing at hash.
func (r *GitRepo) AnnotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

// AddOrigin configures the "origin" remote.
func (r *GitRepo) AddOrigin(url string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{url},
	})
	require.NoError(r.t, err)
}

// Short returns the 7 character abbreviation of hash.
func Short(hash plumbing.Hash) string {
	return hash.String()[:7]
}
