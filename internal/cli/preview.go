package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/output"
	"github.com/ariel-frischer/tagnotes/internal/release"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Preview output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
)

// PreviewFormats lists the accepted --format values.
var PreviewFormats = []string{FormatMarkdown, FormatYAML, FormatJSON, FormatTerminal}

var (
	previewFormat string
	previewCopy   bool
	previewPlain  bool
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

var previewCmd = &cobra.Command{
	Use:   "preview <tag>",
	Short: "Print the changelog of a release without writing it",
	Long: `Print the changelog section that 'tagnotes generate' would write for <tag>.

Formats:
  markdown  The section as it will appear in the cumulative changelog (default)
  yaml      Range, commits and groups as YAML
  json      Range, commits and groups as JSON
  terminal  Colored summary for reading in a terminal`,
	Example: `  # Preview the next release
  tagnotes preview v1.5.0

  # Copy the markdown to the clipboard for a release page
  tagnotes preview v1.5.0 --copy

  # Inspect grouping decisions
  tagnotes preview v1.5.0 --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd, args)
	},
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", FormatMarkdown, "Output format: markdown, yaml, json or terminal")
	previewCmd.Flags().BoolVar(&previewCopy, "copy", false, "Also copy the output to the clipboard")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Plain terminal output (no colors/icons)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	tag, err := targetTag(cmd, args)
	if err != nil {
		return err
	}
	if !validPreviewFormat(previewFormat) {
		return clierrors.InvalidFormat(previewFormat, PreviewFormats)
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}

	return previewRelease(cmd.Context(), sess.generator(cmd), tag, cmd)
}

// previewRelease prepares tag and prints it in the selected format.
func previewRelease(ctx context.Context, gen *release.Generator, tag string, cmd *cobra.Command) error {
	plan, err := gen.Prepare(ctx, tag)
	if err != nil {
		return toCLIError(err)
	}

	var buf bytes.Buffer
	if err := renderPlan(&buf, plan, previewFormat, previewPlain); err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}

	if previewCopy {
		if err := copyToClipboard(buf.String()); err != nil {
			output.PrintWarning(cmd.ErrOrStderr(), "could not copy to clipboard: %v", err)
			return nil
		}
		output.PrintSuccess(cmd.ErrOrStderr(), "Copied %s preview of %s to the clipboard", previewFormat, tag)
	}
	return nil
}

// renderPlan writes plan to w in format.
func renderPlan(w io.Writer, plan *release.Plan, format string, plain bool) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatTerminal:
		return changelog.FormatTerminal(plan.Range, plan.Groups, w, changelog.FormatOptions{Plain: plain})
	default:
		_, err := io.WriteString(w, plan.Markdown())
		return err
	}
}

func validPreviewFormat(format string) bool {
	for _, f := range PreviewFormats {
		if f == format {
			return true
		}
	}
	return false
}
