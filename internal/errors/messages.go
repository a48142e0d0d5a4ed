package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the tagnotes CLI.
// These templates ensure consistent, actionable error messages.

// MissingTag creates an error for a missing target tag argument.
func MissingTag(command string) *CLIError {
	return NewArgumentErrorWithUsage(
		"target tag is required",
		fmt.Sprintf("tagnotes %s <tag>", command),
		"Pass the release tag to generate, e.g. v1.4.0",
		"The tag does not need to exist yet; unreleased work is taken from HEAD",
	)
}

// EmptyTag creates an error for a blank target tag.
func EmptyTag() *CLIError {
	return NewArgumentError(
		"target tag must not be empty",
		"Pass a non-blank tag name, e.g. tagnotes generate v1.4.0",
	)
}

// InvalidFormat creates an error for an unsupported output format.
func InvalidFormat(format string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format: %s", format),
		"Valid formats: "+strings.Join(valid, ", "),
	)
}

// InvalidConfig creates an error for configuration that failed to load or validate.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the values with: tagnotes config show",
		"List valid keys with: tagnotes config keys",
		"Config files are listed by: tagnotes config path",
	)
}

// NotARepository creates an error when the path is not inside a git repository.
func NotARepository(path string) *CLIError {
	if path == "" {
		path = "."
	}
	return NewRepositoryError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run tagnotes inside a git checkout",
		"Or point it at one with --repo <path>",
	)
}

// HistoryQueryFailed creates an error when tag listing or the commit log fails.
func HistoryQueryFailed(query string, err error) *CLIError {
	return WrapWithMessage(err, Repository,
		fmt.Sprintf("failed to %s", query),
		"Check that the repository has the referenced tags: git tag --list",
		"Try the git CLI backend: --backend cli",
		"Run with --debug for details",
	)
}

// RepositoryURLUnknown creates an error when link templates cannot be derived.
func RepositoryURLUnknown(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"cannot determine repository URL for links",
		"Add an 'origin' remote pointing at the hosted repository",
		"Or set it explicitly: tagnotes config set links.repository https://github.com/<owner>/<repo>",
		"Or via environment: TAGNOTES_LINKS__REPOSITORY=https://github.com/<owner>/<repo>",
	)
}

// ReadFailed creates an error when an existing changelog cannot be read.
func ReadFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Output,
		fmt.Sprintf("cannot read %s", path),
		"Check file permissions: ls -la "+path,
	)
}

// WriteFailed creates an error when a changelog document cannot be written.
func WriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Output,
		fmt.Sprintf("cannot write %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure the parent directory is writable",
	)
}

// DuplicateSections creates an error when a changelog repeats a release heading.
func DuplicateSections(path string, issues []string) *CLIError {
	err := NewOutputError(
		fmt.Sprintf("%s has %d problem(s)", path, len(issues)),
		"Regenerate the affected release with: tagnotes generate <tag>",
	)
	err.Details = issues
	return err
}

// ConfigFileExists creates an error when config init would overwrite a file.
func ConfigFileExists(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file already exists: %s", path),
		"Use --force to overwrite it",
		"Or change single values with: tagnotes config set <key> <value>",
	)
}
