package config

import "github.com/ariel-frischer/tagnotes/internal/changelog"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Tagnotes Configuration
# See 'tagnotes config -h' for commands, 'tagnotes config keys' for all options

# History settings
repo_path: ""                         # Directory inside the repository (empty = current dir)
backend: go-git                       # History reader: go-git | cli
git_binary: git                       # Executable used by the cli backend
tag_prefix: v                         # Only tags with this prefix are releases
hash_length: 7                        # Abbreviated hash length (0 = backend default, 4-40)
excluded_prefixes:                    # Commit types left out of the changelog
  - release
  - submodule
  - ci
  - chore
  - doc

# Output settings
changelog_file: CHANGELOG.md          # Cumulative changelog
changelog_dir: .changelog             # Per-release documents (<dir>/<tag>.md)

# Link settings (repository defaults to the origin remote web URL)
links:
  repository: ""                      # e.g. https://github.com/owner/repo
  # commit: ""                        # Override: <repository>/commit
  # compare: ""                       # Override: <repository>/compare
  # release: ""                       # Override: <repository>/releases/tag

# Per-release document preamble (empty values are omitted)
standalone:
  core_version: ""                    # Core library version this release targets
  core_release_url: ""                # Release page base URL of the core library
  warning: ""                         # Text of a [!warning] alert block
  issues_url: ""                      # Linked as "feedback"
  pulls_url: ""                       # Linked as "contributions"
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo_path":  "",
		"backend":    "go-git",
		"git_binary": "git",
		// tag_prefix: tags not starting with this are ignored when
		// resolving ranges and checking changelog headings.
		"tag_prefix": "v",
		// excluded_prefixes: matched against the start of the commit type,
		// so "doc" also excludes "docs".
		"excluded_prefixes": append([]string(nil), changelog.DefaultExcludedPrefixes...),
		"hash_length":       7,
		"changelog_file":    "CHANGELOG.md",
		"changelog_dir":     ".changelog",
		"links": map[string]interface{}{
			"repository": "",
			"commit":     "",
			"compare":    "",
			"release":    "",
		},
		"standalone": map[string]interface{}{
			"core_version":     "",
			"core_release_url": "",
			"warning":          "",
			"issues_url":       "",
			"pulls_url":        "",
		},
	}
}
