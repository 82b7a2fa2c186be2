package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/integrationhub/ideaportal/internal/idea"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (not found, invalid input, store error)
	ExitCommandError = 2 // Command error (bad configuration, store unavailable)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
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

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  string      `json:"error,omitempty"` // error message
}

// Success writes data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Success(data interface{}, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Error writes err in the configured format.
func (f *OutputFormatter) Error(err error) {
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: err.Error()})
		return
	}
	fmt.Fprintf(f.Writer, "Error: %v\n", err)
}

func writeIdeaTable(w io.Writer, ideas []idea.Idea) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUP\tDOWN\tPRIORITY\tSUMMARY")
	for _, it := range ideas {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", it.ID, it.Upvotes, it.Downvotes, it.Priority, it.Summary)
	}
	_ = tw.Flush()
}

func writeIdea(w io.Writer, it idea.Idea, e *idea.Employee) {
	fmt.Fprintf(w, "%s  %s\n", it.ID, it.Summary)
	fmt.Fprintf(w, "  priority:  %s\n", it.Priority)
	fmt.Fprintf(w, "  votes:     +%d / -%d\n", it.Upvotes, it.Downvotes)
	fmt.Fprintf(w, "  created:   %s\n", it.CreatedAt.Format("2006-01-02 15:04 MST"))
	switch {
	case e != nil:
		fmt.Fprintf(w, "  submitter: %s (%s)\n", e.Name, e.Department)
	case it.EmployeeID != "":
		fmt.Fprintf(w, "  submitter: unknown (%s)\n", it.EmployeeID)
	}
	if it.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", strings.ReplaceAll(it.Description, "\n", "\n  "))
	}
}

func writeEmployeeTable(w io.Writer, es []idea.Employee) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tTITLE")
	for _, e := range es {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Department, e.JobTitle)
	}
	_ = tw.Flush()
}
