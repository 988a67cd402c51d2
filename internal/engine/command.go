package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Miyamura80/appctl/internal/capability"
)

// Handler is the signature for all registered commands. Handlers are pure:
// stateless aside from the shared, read-only context, and they never take
// locks shared with other commands.
type Handler func(args map[string]any, app *AppContext) (any, error)

// CommandError is the domain error handlers return; its code decides the
// error code on the resulting ExecutionResult.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string { return e.Message }

func invalidInputf(format string, args ...any) *CommandError {
	return &CommandError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// commandErrFromCapability translates a capability failure into a domain
// error for the result taxonomy.
func commandErrFromCapability(err error) *CommandError {
	var code ErrorCode
	switch capability.KindOf(err) {
	case capability.KindPermissionDenied:
		code = CodePermissionDenied
	case capability.KindIO:
		code = CodeIoError
	default:
		code = CodeInternalError
	}
	return &CommandError{Code: code, Message: err.Error()}
}

// Registry maps command names to handlers and wraps every invocation with
// run identity, timing, and error-to-result translation.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns a registry with the built-in commands registered.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	r.Register("ping", cmdPing)
	r.Register("read_file", cmdReadFile)
	r.Register("write_file", cmdWriteFile)
	return r
}

// Register adds or replaces a command handler.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// List returns the registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a command by name and returns a full ExecutionResult. An
// unknown name yields an INVALID_INPUT error result with zero elapsed time.
func (r *Registry) Execute(name string, args map[string]any, app *AppContext) ExecutionResult {
	runID := NewRunID()
	start := time.Now()

	handler, ok := r.handlers[name]
	if !ok {
		return ResultErr("call", name, runID, 0, CodeInvalidInput,
			fmt.Sprintf("unknown command: %s", name))
	}

	data, err := handler(args, app)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		code := CodeInternalError
		if cmdErr, ok := err.(*CommandError); ok {
			code = cmdErr.Code
		}
		return ResultErr("call", name, runID, elapsed, code, err.Error())
	}

	result := ResultOK("call", name, runID, elapsed)
	result.Data = data
	return result
}

// ---------------------------------------------------------------------------
// Built-in commands
// ---------------------------------------------------------------------------

// cmdPing returns a fixed acknowledgement payload. Proves wiring works.
func cmdPing(_ map[string]any, _ *AppContext) (any, error) {
	return map[string]any{"pong": true}, nil
}

func stringArg(args map[string]any, key string) (string, *CommandError) {
	v, ok := args[key].(string)
	if !ok {
		return "", invalidInputf("missing '%s' string field", key)
	}
	return v, nil
}

// cmdReadFile reads a file and returns its contents decoded permissively as
// text: invalid byte sequences are replaced rather than failing.
//
// Args: {"path": "/absolute/path"}
// Returns: {"content": "...", "size_bytes": 123}
func cmdReadFile(args map[string]any, app *AppContext) (any, error) {
	path, argErr := stringArg(args, "path")
	if argErr != nil {
		return nil, argErr
	}

	data, err := app.FS.ReadFile(path)
	if err != nil {
		return nil, commandErrFromCapability(err)
	}

	return map[string]any{
		"content":    strings.ToValidUTF8(string(data), "�"),
		"size_bytes": len(data),
	}, nil
}

// cmdWriteFile writes string content to a file, creating parents as needed.
//
// Args: {"path": "/absolute/path", "content": "hello"}
// Returns: {"bytes_written": 5}
func cmdWriteFile(args map[string]any, app *AppContext) (any, error) {
	path, argErr := stringArg(args, "path")
	if argErr != nil {
		return nil, argErr
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, invalidInputf("missing 'content' string field")
	}

	if err := app.FS.WriteFile(path, []byte(content)); err != nil {
		return nil, commandErrFromCapability(err)
	}

	return map[string]any{"bytes_written": len(content)}, nil
}
