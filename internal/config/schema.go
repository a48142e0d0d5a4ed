package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeInt ConfigValueType = iota
	TypeString
	TypeEnum
	TypeStringList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeStringList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "links.repository")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"repo_path": {
		Path:        "repo_path",
		Type:        TypeString,
		Description: "Directory inside the repository to read",
	},
	"backend": {
		Path:          "backend",
		Type:          TypeEnum,
		AllowedValues: []string{"go-git", "cli"},
		Description:   "History reader backend",
	},
	"git_binary": {
		Path:        "git_binary",
		Type:        TypeString,
		Description: "Git executable used by the cli backend",
	},
	"tag_prefix": {
		Path:        "tag_prefix",
		Type:        TypeString,
		Description: "Prefix of release tags",
	},
	"excluded_prefixes": {
		Path:        "excluded_prefixes",
		Type:        TypeStringList,
		Description: "Commit type prefixes left out of changelogs (comma-separated)",
	},
	"hash_length": {
		Path:        "hash_length",
		Type:        TypeInt,
		Description: "Abbreviated commit hash length (0 = backend default)",
	},
	"changelog_file": {
		Path:        "changelog_file",
		Type:        TypeString,
		Description: "Cumulative changelog file",
	},
	"changelog_dir": {
		Path:        "changelog_dir",
		Type:        TypeString,
		Description: "Directory of per-release documents",
	},
	"links.repository": {
		Path:        "links.repository",
		Type:        TypeString,
		Description: "Repository web URL (default: origin remote)",
	},
	"links.commit": {
		Path:        "links.commit",
		Type:        TypeString,
		Description: "Commit link base URL",
	},
	"links.compare": {
		Path:        "links.compare",
		Type:        TypeString,
		Description: "Compare link base URL",
	},
	"links.release": {
		Path:        "links.release",
		Type:        TypeString,
		Description: "Release page base URL",
	},
	"standalone.core_version": {
		Path:        "standalone.core_version",
		Type:        TypeString,
		Description: "Core library version referenced by per-release documents",
	},
	"standalone.core_release_url": {
		Path:        "standalone.core_release_url",
		Type:        TypeString,
		Description: "Release page base URL of the core library",
	},
	"standalone.warning": {
		Path:        "standalone.warning",
		Type:        TypeString,
		Description: "Warning block shown in per-release documents",
	},
	"standalone.issues_url": {
		Path:        "standalone.issues_url",
		Type:        TypeString,
		Description: "Feedback link in per-release documents",
	},
	"standalone.pulls_url": {
		Path:        "standalone.pulls_url",
		Type:        TypeString,
		Description: "Contributions link in per-release documents",
	},
}

// SortedKeys returns the known key paths in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeInt:
		return parseIntValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeStringList:
		return parseListValue(value), nil
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseIntValue parses and validates an integer value.
func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}

// parseListValue splits a comma-separated list, dropping empty items.
func parseListValue(value string) ParsedValue {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return ParsedValue{Raw: value, Parsed: items, Type: TypeStringList}
}
