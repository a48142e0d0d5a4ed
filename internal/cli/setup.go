package cli

import (
	stderrors "errors"

	"github.com/ariel-frischer/tagnotes/internal/changelog"
	"github.com/ariel-frischer/tagnotes/internal/config"
	clierrors "github.com/ariel-frischer/tagnotes/internal/errors"
	"github.com/ariel-frischer/tagnotes/internal/git"
	"github.com/ariel-frischer/tagnotes/internal/progress"
	"github.com/ariel-frischer/tagnotes/internal/release"
	"github.com/spf13/cobra"
)

// session is what every history command needs: the effective
// configuration and a reader over the selected repository.
type session struct {
	cfg    *config.Configuration
	reader git.Reader
	links  changelog.LinkTemplates
}

// loadConfig loads the layered configuration and applies the global flag
// overrides that were set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.RepoPath = repoFlag
	}
	if flags.Changed("backend") {
		switch backendFlag {
		case git.BackendGoGit, git.BackendCLI:
			cfg.Backend = backendFlag
		default:
			return nil, clierrors.NewArgumentError(
				"invalid backend: "+backendFlag,
				"Valid backends: "+git.BackendGoGit+", "+git.BackendCLI,
			)
		}
	}
	if flags.Changed("changelog-file") {
		cfg.ChangelogFile = changelogFile
	}
	if flags.Changed("changelog-dir") {
		cfg.ChangelogDir = changelogDir
	}

	return cfg, nil
}

// newSession loads configuration, opens the repository and resolves the
// link templates.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if !git.IsGitRepository(cfg.RepoPath) {
		return nil, clierrors.NotARepository(cfg.RepoPath)
	}

	reader, err := git.NewReader(git.ReaderOptions{
		Backend:    cfg.Backend,
		Path:       cfg.RepoPath,
		GitBinary:  cfg.GitBinary,
		HashLength: cfg.HashLength,
	})
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	repository := ""
	if cfg.NeedsRepositoryURL() {
		repository, err = git.OriginWebURL(cfg.RepoPath)
		if err != nil {
			return nil, clierrors.RepositoryURLUnknown(err)
		}
	}

	return &session{cfg: cfg, reader: reader, links: cfg.LinkTemplates(repository)}, nil
}

// generator builds a release generator reporting query progress on the
// command's stderr. Status lines are shown only in verbose mode.
func (s *session) generator(cmd *cobra.Command) *release.Generator {
	spin := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	spin.SetQuiet(!verboseMode)

	return release.NewGenerator(s.reader, release.Options{
		TagPrefix:        s.cfg.TagPrefix,
		ExcludedPrefixes: s.cfg.ExcludedPrefixes,
		ChangelogFile:    s.cfg.ChangelogFile,
		ChangelogDir:     s.cfg.ChangelogDir,
		Links:            s.links,
		Standalone:       s.cfg.StandaloneOptions(),
	}).WithProgress(spin)
}

// targetTag returns the single tag argument or an argument error.
func targetTag(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", clierrors.MissingTag(cmd.Name())
	}
	return args[0], nil
}

// toCLIError converts release errors into categorized CLI errors.
func toCLIError(err error) error {
	if err == nil {
		return nil
	}
	if clierrors.IsCLIError(err) {
		return err
	}

	if stderrors.Is(err, release.ErrEmptyTag) {
		return clierrors.EmptyTag()
	}

	var queryErr *release.QueryError
	if stderrors.As(err, &queryErr) {
		return clierrors.HistoryQueryFailed(queryErr.Query, queryErr.Err)
	}

	var fileErr *release.FileError
	if stderrors.As(err, &fileErr) {
		if fileErr.Op == "read" {
			return clierrors.ReadFailed(fileErr.Path, fileErr.Err)
		}
		return clierrors.WriteFailed(fileErr.Path, fileErr.Err)
	}

	return err
}
