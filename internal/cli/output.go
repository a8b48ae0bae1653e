package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/engine"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Review passed (no high-priority findings)
	ExitFailure      = 1 // Review produced high-priority findings
	ExitCommandError = 2 // Command error (invalid paths, malformed input, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeResult renders a review result as JSON or as a human-readable
// report, depending on the configured format.
func writeResult(w io.Writer, format string, result *engine.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(w, "Projekt: %s\n", result.Project)
	fmt.Fprintf(w, "Lauf:    %s\n", result.RunID)
	fmt.Fprintf(w, "Digest:  %s\n", result.Digest)
	fmt.Fprintf(w, "Befunde: %d (hoch: %d, mittel: %d, niedrig: %d)\n",
		result.Summary.Findings, result.Summary.High,
		result.Summary.Medium, result.Summary.Low)

	for _, f := range result.Findings {
		fmt.Fprintln(w)
		writeFinding(w, f)
	}
	return nil
}

func writeFinding(w io.Writer, f finding.Finding) {
	fmt.Fprintf(w, "[%s] %s: %s\n", strings.ToUpper(string(f.Priority)), f.ID, f.Title)
	fmt.Fprintf(w, "    %s\n", f.Description)
	if f.NormRef != "" {
		fmt.Fprintf(w, "    Norm: %s\n", f.NormRef)
	}
	if f.Recommendation != "" {
		fmt.Fprintf(w, "    Empfehlung: %s\n", f.Recommendation)
	}
	if f.PlanRef != "" {
		fmt.Fprintf(w, "    Plan: %s\n", f.PlanRef)
	}
}
