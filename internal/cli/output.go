package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Miyamura80/appctl/internal/engine"
)

// Exit codes for CLI commands. The process exit code is the sole
// machine-checkable failure signal for scripting.
const (
	ExitSuccess      = 0 // pass or skip
	ExitFailure      = 1 // scenario expectation mismatch
	ExitCommandError = 2 // error result or command error (bad paths, bind failures)
)

// ExitError carries a specific exit code out of a RunE function. An empty
// message means the result was already printed; main only maps the code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Non-ExitError values
// map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// outputResult renders a result and returns the ExitError matching its
// status (nil for pass/skip).
func outputResult(w io.Writer, result engine.ExecutionResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot encode result", err)
		}
		fmt.Fprintln(w, string(data))
	} else {
		printHuman(w, result)
	}
	return statusExitError(result.Status)
}

// statusExitError maps a result status to the process exit contract.
func statusExitError(status engine.Status) error {
	switch status {
	case engine.StatusFail:
		return NewExitError(ExitFailure, "")
	case engine.StatusError:
		return NewExitError(ExitCommandError, "")
	default:
		return nil
	}
}

func printHuman(w io.Writer, r engine.ExecutionResult) {
	fmt.Fprintf(w, "[%s] %s %s\n", statusLabel(r.Status), r.Command, r.Target)
	fmt.Fprintf(w, "  run_id: %s\n", r.RunID)
	fmt.Fprintf(w, "  timing: %dms\n", r.Timing.Total)

	if len(r.Timing.Steps) > 0 {
		names := make([]string, 0, len(r.Timing.Steps))
		for name := range r.Timing.Steps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "    %s: %dms\n", name, r.Timing.Steps[name])
		}
	}

	if r.Error != nil {
		fmt.Fprintf(w, "  error:  %s - %s\n", r.Error.Code, r.Error.Message)
	}

	if r.Data != nil {
		if data, err := json.MarshalIndent(r.Data, "  ", "  "); err == nil {
			fmt.Fprintf(w, "  %s\n", string(data))
		}
	}

	fmt.Fprintf(w, "  env: os=%s arch=%s headless=%t\n", r.Env.OS, r.Env.Arch, r.Env.Headless)
}

func statusLabel(status engine.Status) string {
	switch status {
	case engine.StatusPass:
		return "PASS"
	case engine.StatusFail:
		return "FAIL"
	case engine.StatusSkip:
		return "SKIP"
	default:
		return "ERROR"
	}
}
