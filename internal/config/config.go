// tagnotes - Release changelog generation from git history
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/tagnotes

// Package config provides hierarchical configuration management for tagnotes using koanf.
// Configuration is loaded with priority: environment variables > project config (.tagnotes/config.yml)
// > user config (~/.config/tagnotes/config.yml) > defaults. Project config may also be JSON
// (.tagnotes/config.json) when no YAML file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
// Nested keys use a double underscore: TAGNOTES_LINKS__REPOSITORY.
const EnvPrefix = "TAGNOTES_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the tagnotes CLI tool configuration
type Configuration struct {
	// RepoPath is the directory inside the repository to read ("" = working directory).
	RepoPath string `koanf:"repo_path" yaml:"repo_path"`
	// Backend selects the history reader: "go-git" (default) or "cli".
	Backend string `koanf:"backend" yaml:"backend" validate:"omitempty,oneof=go-git cli"`
	// GitBinary is the executable used by the cli backend.
	GitBinary string `koanf:"git_binary" yaml:"git_binary"`
	// TagPrefix filters which tags are releases.
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix"`
	// ExcludedPrefixes lists commit type prefixes left out of changelogs.
	ExcludedPrefixes []string `koanf:"excluded_prefixes" yaml:"excluded_prefixes" validate:"dive,committype"`
	// HashLength abbreviates commit hashes (0 = backend default).
	HashLength int `koanf:"hash_length" yaml:"hash_length" validate:"eq=0|min=4,max=40"`

	ChangelogFile string `koanf:"changelog_file" yaml:"changelog_file" validate:"required"`
	ChangelogDir  string `koanf:"changelog_dir" yaml:"changelog_dir" validate:"required"`

	Links      LinksConfig      `koanf:"links" yaml:"links"`
	Standalone StandaloneConfig `koanf:"standalone" yaml:"standalone"`
}

// LinksConfig configures the URLs of rendered links.
// When Repository is empty it is derived from the origin remote.
// Commit, Compare and Release override the templates derived from Repository.
type LinksConfig struct {
	Repository string `koanf:"repository" yaml:"repository" validate:"omitempty,http_url"`
	Commit     string `koanf:"commit" yaml:"commit" validate:"omitempty,http_url"`
	Compare    string `koanf:"compare" yaml:"compare" validate:"omitempty,http_url"`
	Release    string `koanf:"release" yaml:"release" validate:"omitempty,http_url"`
}

// StandaloneConfig configures the preamble of per-release documents.
type StandaloneConfig struct {
	CoreVersion    string `koanf:"core_version" yaml:"core_version"`
	CoreReleaseURL string `koanf:"core_release_url" yaml:"core_release_url" validate:"omitempty,http_url"`
	Warning        string `koanf:"warning" yaml:"warning"`
	IssuesURL      string `koanf:"issues_url" yaml:"issues_url" validate:"omitempty,http_url"`
	PullsURL       string `koanf:"pulls_url" yaml:"pulls_url" validate:"omitempty,http_url"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .tagnotes/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// Config paths:
//   - User config: ~/.config/tagnotes/config.yml (XDG compliant)
//   - Project config: .tagnotes/config.yml, or .tagnotes/config.json when no YAML exists
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, SourceUser); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config. A custom path is parsed by
// its extension; otherwise YAML is preferred over JSON.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		if isJSONPath(customPath) {
			return loadJSONConfig(k, customPath, SourceProject)
		}
		if err := loadYAMLConfig(k, customPath, SourceProject); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		return nil
	}

	switch {
	case fileExists(ProjectConfigPath()):
		if err := loadYAMLConfig(k, ProjectConfigPath(), SourceProject); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
	case fileExists(ProjectJSONConfigPath()):
		return loadJSONConfig(k, ProjectJSONConfigPath(), SourceProject)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string, source ConfigSource) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path string, source ConfigSource) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.RepoPath = expandHomePath(cfg.RepoPath)
	cfg.ChangelogFile = expandHomePath(cfg.ChangelogFile)
	cfg.ChangelogDir = expandHomePath(cfg.ChangelogDir)
	cfg.ExcludedPrefixes = trimEmpty(cfg.ExcludedPrefixes)

	return &cfg, nil
}

// LinkTemplates resolves rendered link templates. repository is used when
// links.repository is not configured (typically the origin web URL).
func (c *Configuration) LinkTemplates(repository string) changelog.LinkTemplates {
	if c.Links.Repository != "" {
		repository = c.Links.Repository
	}
	links := changelog.NewLinkTemplates(repository)
	if c.Links.Commit != "" {
		links.Commit = c.Links.Commit
	}
	if c.Links.Compare != "" {
		links.Compare = c.Links.Compare
	}
	if c.Links.Release != "" {
		links.Release = c.Links.Release
	}
	return links
}

// NeedsRepositoryURL reports whether link templates depend on a
// repository URL that is not configured.
func (c *Configuration) NeedsRepositoryURL() bool {
	if c.Links.Repository != "" {
		return false
	}
	return c.Links.Commit == "" || c.Links.Compare == "" || c.Links.Release == ""
}

// StandaloneOptions converts the standalone section for the renderer.
func (c *Configuration) StandaloneOptions() changelog.StandaloneOptions {
	return changelog.StandaloneOptions{
		CoreVersion:    c.Standalone.CoreVersion,
		CoreReleaseURL: c.Standalone.CoreReleaseURL,
		Warning:        c.Standalone.Warning,
		IssuesURL:      c.Standalone.IssuesURL,
		PullsURL:       c.Standalone.PullsURL,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// envTransform converts environment variable names to config keys
// Example: TAGNOTES_LINKS__REPOSITORY -> links.repository
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// envValue maps an environment variable to its config key. List keys are
// split on commas: TAGNOTES_EXCLUDED_PREFIXES=ci,chore -> [ci chore].
func envValue(name, value string) (string, any) {
	key := envTransform(name)
	if schema, ok := KnownKeys[key]; ok && schema.Type == TypeStringList {
		return key, parseListValue(value).Parsed
	}
	return key, value
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
