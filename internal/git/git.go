// Package git provides read-only access to repository history for tagnotes:
// tag listing ordered by commit recency and non-merge commit logs between two
// references. It uses the go-git library by default and can fall back to the
// git CLI (CLIReader) for repositories or setups go-git does not handle.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Reader is the narrow history interface the changelog pipeline needs.
type Reader interface {
	// ListTags returns tag names, newest by commit date first.
	ListTags(ctx context.Context) ([]string, error)
	// LogRange returns "hash subject" lines for non-merge commits reachable
	// from to but not from from, newest first. An empty from covers the
	// full history up to to.
	LogRange(ctx context.Context, from, to string) ([]string, error)
}

// Backend names accepted by NewReader.
const (
	BackendGoGit = "go-git"
	BackendCLI   = "cli"
)

// ReaderOptions configures NewReader.
type ReaderOptions struct {
	Backend    string
	Path       string
	GitBinary  string
	HashLength int
}

// NewReader returns the Reader for the configured backend.
func NewReader(opts ReaderOptions) (Reader, error) {
	switch opts.Backend {
	case "", BackendGoGit:
		return NewGoGitReader(opts.Path, opts.HashLength), nil
	case BackendCLI:
		return NewCLIReader(opts.Path, opts.GitBinary, opts.HashLength), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q (valid: %s, %s)", opts.Backend, BackendGoGit, BackendCLI)
	}
}

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// IsGitRepository checks if path is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", path, result)
	return result
}

// GetRepositoryRoot returns the absolute path to the worktree root
// containing path.
func GetRepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// GetGitDir returns the path of the repository's .git directory.
func GetGitDir(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository at %s is not stored on disk", path)
	}
	return storage.Filesystem().Root(), nil
}

// OriginWebURL returns the browsable https URL of the "origin" remote.
func OriginWebURL(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("getting remote %q: %w", git.DefaultRemoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", git.DefaultRemoteName)
	}

	web, err := WebURL(urls[0])
	if err != nil {
		return "", err
	}
	logDebug("[git] OriginWebURL: %s -> %s", urls[0], web)
	return web, nil
}

// abbreviate shortens a full hash to length characters. Zero keeps it whole.
func abbreviate(hash string, length int) string {
	if length <= 0 || length >= len(hash) {
		return hash
	}
	return hash[:length]
}

// subjectLine returns the commit subject: the first paragraph of the
// message joined onto one line, as git's %s does.
func subjectLine(message string) string {
	var parts []string
	for _, line := range strings.Split(strings.TrimLeft(message, "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
