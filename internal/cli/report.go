package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kevin180791/tgacheck/internal/finding"
	"github.com/Kevin180791/tgacheck/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	List     bool
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Read back a recorded review run",
		Long: `Read a recorded run from the audit database. Without a run ID the most
recent run is shown; --list shows all recorded runs.

Example:
  tgacheck report --db pruefungen.db
  tgacheck report --db pruefungen.db 0195a2b4-...
  tgacheck report --db pruefungen.db --list`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runReport(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite audit database (required)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list all recorded runs")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, runID string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if opts.List {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		return writeRunList(out, opts.Format, runs)
	}

	run, findings, err := readRun(ctx, st, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	return writeRunReport(out, opts.Format, run, findings)
}

func readRun(ctx context.Context, st *store.Store, runID string) (store.Run, []finding.Finding, error) {
	if runID == "" {
		latest, err := st.LatestRun(ctx)
		if err != nil {
			return store.Run{}, nil, err
		}
		runID = latest.ID
	}
	return st.ReadRun(ctx, runID)
}

func writeRunList(w io.Writer, format string, runs []store.Run) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	for _, run := range runs {
		fmt.Fprintf(w, "%s  %s  %s  Befunde: %d\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Project, run.Findings)
	}
	return nil
}

type runReportPayload struct {
	Run      store.Run         `json:"lauf"`
	Findings []finding.Finding `json:"befunde"`
}

func writeRunReport(w io.Writer, format string, run store.Run, findings []finding.Finding) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runReportPayload{Run: run, Findings: findings})
	}

	fmt.Fprintf(w, "Projekt: %s\n", run.Project)
	fmt.Fprintf(w, "Lauf:    %s (%s)\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Digest:  %s\n", run.Digest)
	fmt.Fprintf(w, "Befunde: %d\n", len(findings))
	for _, f := range findings {
		fmt.Fprintln(w)
		writeFinding(w, f)
	}
	return nil
}
