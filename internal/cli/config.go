package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	"github.com/ariel-frischer/tagnotes/internal/config"
	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configUser  bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tagnotes configuration",
	Long: `Manage tagnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags (--repo, --backend, --changelog-file, --changelog-dir)
  2. Environment variables (TAGNOTES_*, nested keys joined with __)
  3. Project config (.tagnotes/config.yml, or .tagnotes/config.json)
  4. User config (~/.config/tagnotes/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  tagnotes config show

  # Set the repository used for links
  tagnotes config set links.repository https://github.com/acme/widget

  # Create a commented project config
  tagnotes config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigPath(cmd)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		width := 0
		for _, key := range config.SortedKeys() {
			width = max(width, len(key))
		}
		for _, key := range config.SortedKeys() {
			schema := config.KnownKeys[key]
			desc := schema.Description
			if len(schema.AllowedValues) > 0 {
				desc += " (" + strings.Join(schema.AllowedValues, ", ") + ")"
			}
			output.PrintKeyValue(out, width, key, fmt.Sprintf("%s  %s", schema.Type, desc))
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config (.tagnotes/config.yml),
or in the user config with --user. The file is created when missing and
other keys and comments are preserved.

List values are comma separated.`,
	Example: `  tagnotes config set hash_length 10
  tagnotes config set backend cli --user
  tagnotes config set excluded_prefixes "chore,ci,doc,test"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, args[0], args[1])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented configuration file",
	Long: `Create a configuration file with every key and its default value.

By default the project config (.tagnotes/config.yml) is created; use --user
for the user config. An existing file is left unchanged unless --force is
given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configKeysCmd, configSetCmd, configInitCmd)

	configSetCmd.Flags().BoolVar(&configUser, "user", false, "Write to the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configUser, "user", false, "Create the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

// targetConfigPath returns the file written by config set and config init.
func targetConfigPath(user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "cannot locate user config directory")
		}
		return path, nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return config.ProjectConfigPath(), nil
}

func runConfigPath(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	userPath, err := config.UserConfigPath()
	if err != nil {
		userPath = "(unavailable: " + err.Error() + ")"
	}

	projectPath := configPath
	if projectPath == "" {
		projectPath = config.ProjectConfigPath()
		if !fileExists(projectPath) && fileExists(config.ProjectJSONConfigPath()) {
			projectPath = config.ProjectJSONConfigPath()
		}
	}

	const width = 7
	output.PrintKeyValue(out, width, "user", describePath(userPath))
	output.PrintKeyValue(out, width, "project", describePath(projectPath))
	return nil
}

func describePath(path string) string {
	if fileExists(path) {
		return path
	}
	return path + color.New(color.Faint).Sprint(" (not found)")
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	path, err := targetConfigPath(configUser)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == ".json" {
		return clierrors.NewConfigError(
			"config set only edits YAML files: "+path,
			"Edit the JSON file by hand, or move it to .tagnotes/config.yml",
		)
	}

	if err := config.SetConfigValue(path, key, value); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, err.Error(),
			"List valid keys with: tagnotes config keys")
	}

	scope := "project"
	if configUser {
		scope = "user"
	}
	output.PrintSuccess(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)", key, value, scope, path)
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path, err := targetConfigPath(configUser)
	if err != nil {
		return err
	}

	if fileExists(path) && !configForce {
		return clierrors.ConfigFileExists(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WriteFailed(path, err)
	}
	if err := changelog.SafeWrite(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WriteFailed(path, err)
	}

	output.PrintWritten(cmd.OutOrStdout(), "Created", path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
