package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/salvage/internal/config"
	"github.com/harrison/salvage/internal/deleted"
	"github.com/harrison/salvage/internal/display"
	"github.com/harrison/salvage/internal/fsys"
	"github.com/harrison/salvage/internal/glob"
	"github.com/harrison/salvage/internal/logger"
	"github.com/harrison/salvage/internal/manifest"
	"github.com/harrison/salvage/internal/match"
)

var (
	// ErrNoMatch is reported for a wildcard pattern that matched nothing.
	ErrNoMatch = errors.New("No match")
	// ErrNoSuchFile is reported for a literal pattern naming nothing.
	ErrNoSuchFile = errors.New("No such file or directory")
	// ErrNothingListed is reported for a literal pattern that exists but
	// contributed no entries under the requested options.
	ErrNothingListed = errors.New("nothing to list")
	// ErrPatternsFailed is returned when at least one pattern produced no
	// output.
	ErrPatternsFailed = errors.New("some patterns produced no results")
)

// addSearchFlags registers the flags shared by every search command.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .salvage/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().String("manifest", "", "Write a YAML manifest of the results to this file")
	cmd.Flags().BoolP("single-column", "1", false, "List one path per line")
	cmd.Flags().BoolP("follow-links", "L", false, "Follow symbolic links to directories while recursing")
	cmd.Flags().Bool("follow-mountpoints", false, "Recurse into other mounted filesystems")
	cmd.Flags().BoolP("all", "a", false, "Include names beginning with '.'")
}

// searchEnv is what a search command needs once flags and configuration
// are resolved.
type searchEnv struct {
	cfg     *config.Config
	codec   *deleted.Codec
	console *logger.ConsoleLogger
	fileLog *logger.FileLogger
	log     logger.Logger
	diag    *match.Diagnostics
	matcher *match.Matcher
}

func newSearchEnv(cmd *cobra.Command) (*searchEnv, error) {
	configPath, _ := cmd.Flags().GetString("config")
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, source, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.MergeWithFlags(
		stringFlag(cmd, "log-level"),
		stringFlag(cmd, "log-dir"),
		boolFlag(cmd, "follow-links"),
		boolFlag(cmd, "follow-mountpoints"),
		boolFlag(cmd, "all"),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	codec, err := deleted.NewCodec(cfg.DeletedMarker)
	if err != nil {
		return nil, err
	}

	env := &searchEnv{
		cfg:     cfg,
		codec:   codec,
		console: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}
	env.log = env.console

	// Traversal problems are summarised on the console after the listing;
	// the run log keeps each one as it happens.
	var issueLog logger.Logger
	if cfg.LogDir != "" {
		env.fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		env.log = logger.Multi(env.console, env.fileLog)
		issueLog = env.fileLog
	}

	if source != "" {
		env.log.LogDebug("loaded config from " + source)
	}

	env.diag = match.NewDiagnostics(logger.NewReporter(issueLog))
	env.matcher = match.New(fsys.NewOS(), match.WithCodec(codec), match.WithReporter(env.diag))
	return env, nil
}

// Close releases the run log.
func (e *searchEnv) Close() {
	if e.fileLog != nil {
		if err := e.fileLog.Close(); err != nil {
			e.console.LogWarn(err.Error())
		}
	}
}

// traversalOptions are the option bits that come from configuration.
func (e *searchEnv) traversalOptions() match.Options {
	var opts match.Options
	if e.cfg.FollowLinks {
		opts |= match.FollowLinks
	}
	if e.cfg.FollowMountpoints {
		opts |= match.FollowMountpoints
	}
	if e.cfg.FindDotfiles {
		opts |= match.FindDotfiles
	}
	return opts
}

// run resolves every pattern, prints the combined listing and the issue
// summary, and writes the manifest when one was requested.
func (e *searchEnv) run(cmd *cobra.Command, name string, patterns []string, opts match.Options) error {
	start := time.Now()
	man := manifest.New(name, opts, e.codec.Marker())

	e.log.LogDebug(fmt.Sprintf("%s: %d patterns, options %s", name, len(patterns), opts))

	var listing []string
	failed := 0
	for _, pattern := range patterns {
		matches, err := e.matcher.FindMatches(pattern, opts)
		if errors.Is(err, match.ErrNoFilesRequested) || errors.Is(err, match.ErrUnknownOptions) {
			// Same outcome for every pattern.
			return err
		}
		if err == nil && len(matches) == 0 {
			err = noMatchError(pattern)
		}
		man.AddResult(pattern, matches, err)

		if err != nil {
			failed++
			e.log.LogTrace(fmt.Sprintf("%s: %v", pattern, err))
			fmt.Fprintf(cmd.ErrOrStderr(), "salvage: %v\n", err)
			continue
		}
		e.log.LogTrace(fmt.Sprintf("%s: %d matches", pattern, len(matches)))
		for _, m := range matches {
			listing = append(listing, display.RelPath(m))
		}
	}

	if len(listing) > 0 {
		single, _ := cmd.Flags().GetBool("single-column")
		fmt.Fprintln(cmd.OutOrStdout(), display.FormatColumns(listing, single, e.cfg.ColumnsWidth))
	}

	issues := e.diag.Issues()
	if w, ok := display.IssuesWarning(issues); ok {
		w.Display(cmd.ErrOrStderr())
	}

	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		man.AddIssues(issues)
		if err := man.Write(path); err != nil {
			return err
		}
		e.log.LogInfo(fmt.Sprintf("manifest %s written to %s", man.RunID, path))
	}

	summary := logger.RunSummary{
		Patterns: len(patterns),
		Matches:  man.Total(),
		Warnings: len(e.diag.Warnings()),
		Errors:   len(e.diag.Errors()),
		Duration: time.Since(start),
	}
	if e.fileLog != nil {
		e.fileLog.LogSummary(summary)
	}
	if e.cfg.LogLevel == "trace" || e.cfg.LogLevel == "debug" {
		e.console.LogSummary(summary)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPatternsFailed, failed, len(patterns))
	}
	return nil
}

// noMatchError explains an empty result the way a shell would.
func noMatchError(pattern string) error {
	if glob.HasWildcards(pattern) {
		return fmt.Errorf("%s: %w", pattern, ErrNoMatch)
	}
	path := glob.Unescape(pattern)
	if path == "" {
		path = "."
	}
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%s: %w", pattern, ErrNothingListed)
	}
	return fmt.Errorf("%s: %w", pattern, ErrNoSuchFile)
}

// stringFlag returns the flag value only when it was set on the command line.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// boolFlag returns the flag value only when it was set on the command line.
func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
