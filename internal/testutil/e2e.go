package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// tagnotesBinaryPath caches the built tagnotes binary path.
	tagnotesBinaryPath string
	tagnotesBuildOnce  sync.Once
	tagnotesBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing.
// It runs the real tagnotes binary in a temp working directory with its
// own HOME, so no user configuration leaks into the test.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	binDir  string
	workDir string
	env     map[string]string
}

// CommandResult captures the result of running a tagnotes command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment. The binary is built once
// per test session.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	e := &E2EEnv{
		t:       t,
		tempDir: t.TempDir(),
		env:     make(map[string]string),
	}
	e.binDir = filepath.Join(e.tempDir, "bin")
	e.workDir = filepath.Join(e.tempDir, "work")
	for _, dir := range []string{e.binDir, e.workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	e.buildTagnotes()
	return e
}

func (e *E2EEnv) buildTagnotes() {
	e.t.Helper()

	tagnotesBuildOnce.Do(func() {
		tagnotesBinaryPath, tagnotesBuildErr = doBuildTagnotes()
	})
	if tagnotesBuildErr != nil {
		e.t.Fatalf("building tagnotes: %v", tagnotesBuildErr)
	}

	content, err := os.ReadFile(tagnotesBinaryPath)
	if err != nil {
		e.t.Fatalf("reading tagnotes binary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.binDir, "tagnotes"), content, 0o755); err != nil {
		e.t.Fatalf("writing tagnotes binary: %v", err)
	}
}

func doBuildTagnotes() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "tagnotes-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "tagnotes")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tagnotes")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("building tagnotes: %w\nOutput: %s", err, output)
	}

	return binaryPath, nil
}

// Setenv sets an environment variable for subsequent Run calls.
func (e *E2EEnv) Setenv(key, value string) {
	e.env[key] = value
}

// Run executes tagnotes in the working directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()
	cmd := exec.Command(filepath.Join(e.binDir, "tagnotes"), args...)
	cmd.Dir = e.workDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("running tagnotes: %v", err)
		}
	}

	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + e.binDir + string(os.PathListSeparator) + os.Getenv("PATH"),
		"HOME=" + e.tempDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.tempDir, "config"),
		"NO_COLOR=1",
	}

	safeVars := []string{"TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"}
	for _, key := range safeVars {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	for key, val := range e.env {
		env = append(env, key+"="+val)
	}
	return env
}

// WorkDir returns the directory tagnotes runs in.
func (e *E2EEnv) WorkDir() string {
	return e.workDir
}

// InitGitRepo initializes a repository in the working directory.
func (e *E2EEnv) InitGitRepo() *GitRepo {
	e.t.Helper()
	return InitGitRepo(e.t, e.workDir)
}

// ReadFile reads a file relative to the working directory.
func (e *E2EEnv) ReadFile(rel string) string {
	e.t.Helper()
	content, err := os.ReadFile(filepath.Join(e.workDir, rel))
	if err != nil {
		e.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(content)
}

// WriteFile writes a file relative to the working directory.
func (e *E2EEnv) WriteFile(rel, content string) {
	e.t.Helper()
	path := filepath.Join(e.workDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
}
