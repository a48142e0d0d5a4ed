package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIReader reads history by running the git executable.
type CLIReader struct {
	// Dir is the directory git runs in ("" = working directory).
	Dir string
	// Binary is the git executable (default "git").
	Binary string
	// HashLength is passed as --abbrev (0 = git's default abbreviation).
	HashLength int
}

// NewCLIReader creates a git CLI backed Reader.
func NewCLIReader(dir, binary string, hashLength int) *CLIReader {
	return &CLIReader{Dir: dir, Binary: binary, HashLength: hashLength}
}

// ListTags runs 'git tag --sort=-committerdate'.
func (r *CLIReader) ListTags(ctx context.Context) ([]string, error) {
	return r.run(ctx, "tag", "--sort=-committerdate")
}

// LogRange runs 'git log --no-merges' over from..to with one
// "hash subject" line per commit.
func (r *CLIReader) LogRange(ctx context.Context, from, to string) ([]string, error) {
	return r.run(ctx, logArgs(from, to, r.HashLength)...)
}

// logArgs builds the git log arguments for a range.
func logArgs(from, to string, hashLength int) []string {
	args := []string{"log", "--no-merges", "--no-color", "--format=%h %s"}
	if hashLength > 0 {
		args = append(args, fmt.Sprintf("--abbrev=%d", hashLength))
	}
	if from != "" {
		return append(args, from+".."+to)
	}
	return append(args, to)
}

// run executes git and returns its non-empty output lines.
func (r *CLIReader) run(ctx context.Context, args ...string) ([]string, error) {
	binary := r.Binary
	if binary == "" {
		binary = "git"
	}

	logDebug("[git] running %s %s", binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}

	return splitOutput(output), nil
}

// splitOutput splits command output into trimmed, non-empty lines.
func splitOutput(output []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
