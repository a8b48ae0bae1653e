package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/engine"
	"github.com/Kevin180791/tgacheck/internal/facts"
	"github.com/Kevin180791/tgacheck/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Database string
	Catalog  string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.TokenGenerator
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <projekt.yaml>",
		Short: "Review a project fact file",
		Long: `Review the extracted planning facts of a project against the parameter
catalog and the cross-trade coordination rules.

Exits 0 when the review produced no high-priority findings, 1 when it did,
and 2 on command errors (missing files, malformed input).

Example:
  tgacheck check projekt.yaml
  tgacheck check projekt.yaml --db pruefungen.db --format json
  tgacheck check projekt.yaml --catalog firmenwerte.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "CUE overlay for the parameter catalog")

	return cmd
}

func runCheck(opts *CheckOptions, projectPath string, cmd *cobra.Command) error {
	log := configureLogging(opts.Verbose)

	cat, err := loadCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	project, err := facts.LoadProject(projectPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load project", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	runner := engine.NewRunner(cat, log, opts.RunIDs)
	result, err := runner.Run(ctx, project)
	if err != nil {
		return WrapExitError(ExitCommandError, "review failed", err)
	}

	if opts.Database != "" {
		if err := persistRun(ctx, opts.Database, project, result); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		log.Info("run recorded", "db", opts.Database, "run_id", result.RunID)
	}

	if err := writeResult(cmd.OutOrStdout(), opts.Format, result); err != nil {
		return WrapExitError(ExitCommandError, "failed to write result", err)
	}

	if result.Summary.High > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("%d Befunde mit hoher Priorität", result.Summary.High))
	}
	return nil
}

func persistRun(ctx context.Context, path string, project *facts.Project, result *engine.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.WriteRun(ctx, store.Run{
		ID:          result.RunID,
		Project:     result.Project,
		ProjectType: project.ProjectType,
		CreatedAt:   time.Now().UTC(),
		Digest:      result.Digest,
		Documents:   result.Summary.Documents,
		Findings:    result.Summary.Findings,
	}, result.Findings)
}

// configureLogging sets the process default logger: text to stderr, debug
// level when verbose.
func configureLogging(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// signalContext derives a context cancelled by SIGINT/SIGTERM from the
// command's context (tests inject their own).
func signalContext(cmd *cobra.Command) (context.Context, func()) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
