// Package engine implements the harness core: the result model, the
// execution context, the command registry, the capability probes, and the
// doctor report.
package engine

import (
	"github.com/google/uuid"
)

// Status is the outcome of a command, probe, or scenario step.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// ErrorCode is the closed top-level error taxonomy. Capability-level errors
// are always translated into one of these at the command/probe boundary.
type ErrorCode string

const (
	CodeInvalidInput         ErrorCode = "INVALID_INPUT"
	CodeUnsupported          ErrorCode = "UNSUPPORTED"
	CodeUnimplemented        ErrorCode = "UNIMPLEMENTED"
	CodeDependencyMissing    ErrorCode = "DEPENDENCY_MISSING"
	CodePermissionDenied     ErrorCode = "PERMISSION_DENIED"
	CodeNetworkError         ErrorCode = "NETWORK_ERROR"
	CodeIoError              ErrorCode = "IO_ERROR"
	CodeTimeout              ErrorCode = "TIMEOUT"
	CodeExternalInterference ErrorCode = "EXTERNAL_INTERFERENCE"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// ErrorInfo carries the code and message attached to non-pass results.
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

// TimingInfo records the total elapsed milliseconds plus per-step durations
// for multi-step probes.
type TimingInfo struct {
	Total int64            `json:"total"`
	Steps map[string]int64 `json:"steps,omitempty"`
}

// EnvSummary is attached to every result, computed fresh at call time.
type EnvSummary struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	Headless bool   `json:"headless"`
}

// ExecutionResult is the stable output contract for every operation.
type ExecutionResult struct {
	RunID     string      `json:"run_id"`
	Command   string      `json:"command"`
	Target    string      `json:"target"`
	Status    Status      `json:"status"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timing    TimingInfo  `json:"timing_ms"`
	Artifacts []string    `json:"artifacts"`
	Env       EnvSummary  `json:"env_summary"`
	Data      any         `json:"data,omitempty"`
}

// NewRunID generates a fresh UUIDv4 run identifier. Never reused.
func NewRunID() string {
	return uuid.NewString()
}

// ResultOK builds a passing result shell; the caller fills in Data.
func ResultOK(command, target, runID string, totalMS int64) ExecutionResult {
	return ExecutionResult{
		RunID:     runID,
		Command:   command,
		Target:    target,
		Status:    StatusPass,
		Timing:    TimingInfo{Total: totalMS},
		Artifacts: []string{},
		Env:       NewEnvSummary(),
	}
}

// ResultErr builds an error result.
func ResultErr(command, target, runID string, totalMS int64, code ErrorCode, message string) ExecutionResult {
	return ExecutionResult{
		RunID:   runID,
		Command: command,
		Target:  target,
		Status:  StatusError,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
		Timing:    TimingInfo{Total: totalMS},
		Artifacts: []string{},
		Env:       NewEnvSummary(),
	}
}

// ResultSkip builds a skip result for expected, non-fatal environment
// limitations.
func ResultSkip(command, target, runID string, totalMS int64, reason string) ExecutionResult {
	return ExecutionResult{
		RunID:   runID,
		Command: command,
		Target:  target,
		Status:  StatusSkip,
		Error: &ErrorInfo{
			Code:    CodeUnsupported,
			Message: reason,
		},
		Timing:    TimingInfo{Total: totalMS},
		Artifacts: []string{},
		Env:       NewEnvSummary(),
	}
}
